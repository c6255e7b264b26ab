package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/repository"
	"paintingstore/internal/validator"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name      string
	Email     string
	Password  string
	AdminCode string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	validator InputValidator
	hasher    PasswordHasher
	issuer    AccessTokenIssuer
	clock     Clock
	adminCode string
}

// DI
// adminCodeが空なら管理者登録はできない
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	v InputValidator,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
	adminCode string,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		validator: v,
		hasher:    hasher,
		issuer:    issuer,
		clock:     clock,
		adminCode: adminCode,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (AuthOutput, error) {
	var out AuthOutput

	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password); err != nil {
		if errors.Is(err, validator.ErrEmailAlreadyUsed) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hashed, // 平文は保存しない
		Role:         u.roleFor(in.AdminCode),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 検証後に同じメールで登録された場合は一意制約で弾かれる
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	return AuthOutput{Token: token, ExpiresAt: exp, User: toUserOutput(user)}, nil
}

// 管理者コードが一致したときだけadmin
func (u *RegisterUserUsecase) roleFor(code string) model.Role {
	if u.adminCode == "" || code == "" {
		return model.RoleCustomer
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(u.adminCode)) == 1 {
		return model.RoleAdmin
	}
	return model.RoleCustomer
}

// パスワードのよくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwertyuiop":   {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}
