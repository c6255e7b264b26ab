package usecase

import (
	"context"
	"errors"
	"net/http"

	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"
)

// 管理画面のユーザー参照。更新はしない
type AdminUserUsecase struct {
	users  repo.UserRepository
	orders repo.OrderRepository
}

func NewAdminUserUsecase(users repo.UserRepository, orders repo.OrderRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, orders: orders}
}

// 新しい順。パスワードハッシュはjsonに出ない
func (u *AdminUserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return []model.User{}, internalError(err)
	}
	return users, nil
}

func (u *AdminUserUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, internalError(err)
	}
	return *user, nil
}

func (u *AdminUserUsecase) Count(ctx context.Context) (int64, error) {
	n, err := u.users.Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

// ユーザーが存在しなければ404
func (u *AdminUserUsecase) ListOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if _, err := u.Get(ctx, userID); err != nil {
		return []OrderOutput{}, err
	}
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, internalError(err)
	}
	return toOrderOutputs(orders), nil
}
