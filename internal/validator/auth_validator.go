package validator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"paintingstore/internal/repository"
)

var (
	// 入力が不正（400）
	ErrInvalidInput = errors.New("invalid input")

	// emailが既に使用済み（409）
	ErrEmailAlreadyUsed = errors.New("email already used")
)

const minPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) *AuthValidator {
	return &AuthValidator{users: users}
}

// サインアップの入力を検証
func (v *AuthValidator) ValidateRegister(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !isEmailLike(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, strings.ToLower(email))
	if err == nil && u != nil {
		return ErrEmailAlreadyUsed
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	return nil
}

// ログインの入力を検証
func (v *AuthValidator) ValidateLogin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
