package validator

import (
	"context"
	"errors"
	"testing"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *userRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}
func (m *userRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestValidateRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		v := NewAuthValidator(&userRepoMock{})
		err := v.ValidateRegister(ctx, "", "a@example.com", "password1")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad email", func(t *testing.T) {
		v := NewAuthValidator(&userRepoMock{})
		err := v.ValidateRegister(ctx, "A", "not-an-email", "password1")
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("short password", func(t *testing.T) {
		v := NewAuthValidator(&userRepoMock{})
		err := v.ValidateRegister(ctx, "A", "a@example.com", "short")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("FindByEmail", ctx, "a@example.com").Return(&model.User{ID: 1}, nil)
		v := NewAuthValidator(users)
		err := v.ValidateRegister(ctx, "A", "A@example.com", "password1")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("ok", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("FindByEmail", ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
		v := NewAuthValidator(users)
		assert.NoError(t, v.ValidateRegister(ctx, "A", "a@example.com", "password1"))
	})

	t.Run("db error", func(t *testing.T) {
		users := &userRepoMock{}
		boom := errors.New("boom")
		users.On("FindByEmail", ctx, "a@example.com").Return(nil, boom)
		v := NewAuthValidator(users)
		assert.ErrorIs(t, v.ValidateRegister(ctx, "A", "a@example.com", "password1"), boom)
	})
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator(&userRepoMock{})
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "x"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "a@example.com", ""), ErrInvalidInput)
	assert.NoError(t, v.ValidateLogin(context.Background(), "a@example.com", "x"))
}

func TestValidateShippingAddress(t *testing.T) {
	ok := model.ShippingAddress{Address: "1 Main St", City: "Paris", PostalCode: "75001", Country: "FR"}
	assert.NoError(t, ValidateShippingAddress(ok))

	missing := ok
	missing.City = "  "
	err := ValidateShippingAddress(missing)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "shippingAddress.city")
}
