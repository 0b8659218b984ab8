package validator

import (
	"context"
	"errors"
	"strings"

	"littlelemon/internal/repository"
	"littlelemon/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// usernameが既に使用済み
	ErrUsernameTaken = errors.New("username already exists")

	// emailの形式が不正
	ErrInvalidEmail = errors.New("invalid email")

	// パスワードが短い
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// パスワード最低文字数
const minPasswordLen = 8

type authValidator struct {
	users repository.UserRepository
	v     *playground.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users, v: playground.New()}
}

// サインアップの入力を検証
func (a *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// 必須チェック
	if username == "" || password == "" {
		return ErrInvalidInput
	}
	if len(username) > 150 {
		return ErrInvalidInput
	}

	// emailは任意。あれば形式チェック
	if email != "" {
		if err := a.v.Var(email, "email"); err != nil {
			return ErrInvalidEmail
		}
	}

	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}

	// username重複チェック（DBが必要）
	u, err := a.users.FindByUsername(ctx, username)
	if err == nil && u != nil {
		return ErrUsernameTaken
	}

	return nil
}

// ログインの入力を検証
func (a *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidInput
	}
	return nil
}
