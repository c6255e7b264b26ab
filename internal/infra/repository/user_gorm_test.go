package repository

import (
	"context"
	"testing"

	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGormRepository(t *testing.T) {
	db := newTestDB(t)
	r := NewUserGormRepository(db)
	ctx := context.Background()

	u := &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "h", Role: model.RoleCustomer}
	require.NoError(t, r.Create(ctx, u))
	require.NotZero(t, u.ID)

	dup := &model.User{Name: "Bob2", Email: "bob@example.com", PasswordHash: "h", Role: model.RoleCustomer}
	assert.ErrorIs(t, r.Create(ctx, dup), repo.ErrDuplicate)

	got, err := r.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)

	_, err = r.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAuditLogGormRepository_ListFilter(t *testing.T) {
	db := newTestDB(t)
	r := NewAuditLogGormRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, model.AuditLog{ActorUserID: 1, Action: model.AuditActionCreatePainting, ResourceType: model.AuditResourcePainting, ResourceID: 10}))
	require.NoError(t, r.Create(ctx, model.AuditLog{ActorUserID: 1, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: 20}))

	rt := model.AuditResourceOrder
	logs, err := r.List(ctx, repo.AuditLogFilter{ResourceType: &rt})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.EqualValues(t, 20, logs[0].ResourceID)

	all, err := r.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, all[0].Action)
}
