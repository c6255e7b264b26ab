package usecase

import (
	"context"

	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	paintings repo.PaintingRepository
	auditLogs repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) Paintings() repo.PaintingRepository { return r.paintings }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type PaintingRepoMock struct{ mock.Mock }

func (m *PaintingRepoMock) ListAll(ctx context.Context) ([]model.Painting, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Painting)
	return ps, args.Error(1)
}

func (m *PaintingRepoMock) FindByID(ctx context.Context, id int64) (model.Painting, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Painting)
	return p, args.Error(1)
}

func (m *PaintingRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Painting, error) {
	args := m.Called(ctx, ids)
	ps, _ := args.Get(0).([]model.Painting)
	return ps, args.Error(1)
}

func (m *PaintingRepoMock) Create(ctx context.Context, p model.Painting) (model.Painting, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Painting)
	return out, args.Error(1)
}

func (m *PaintingRepoMock) Update(ctx context.Context, p model.Painting) (model.Painting, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Painting)
	return out, args.Error(1)
}

func (m *PaintingRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PaintingRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// CatalogCache fake
// =====================

type fakeCache struct {
	stored      []model.Painting
	hit         bool
	invalidated int
}

func (c *fakeCache) GetPaintings(ctx context.Context) ([]model.Painting, bool, error) {
	return c.stored, c.hit, nil
}

func (c *fakeCache) SetPaintings(ctx context.Context, ps []model.Painting) error {
	c.stored = ps
	c.hit = true
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.stored = nil
	c.hit = false
	c.invalidated++
	return nil
}
