package auth

import (
	"context"
	"errors"
	"time"

	"paintingstore/internal/domain/model"
)

var (
	// メールまたはパスワードが違う（401）
	ErrInvalidCredentials = errors.New("invalid credentials")
	// よくある弱いパスワード（400）
	ErrWeakPassword = errors.New("weak password")
	// 競合（409）
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力チェック（validatorパッケージが実装）
type InputValidator interface {
	ValidateRegister(ctx context.Context, name, email, password string) error
	ValidateLogin(ctx context.Context, email, password string) error
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// レスポンスに出すユーザー（ハッシュは含めない）
type UserOutput struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// register / login 共通の出力
type AuthOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      UserOutput `json:"user"`
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
