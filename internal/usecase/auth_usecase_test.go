package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"
	"littlelemon/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type AuthValidatorMock struct{ mock.Mock }

func (m *AuthValidatorMock) ValidateRegister(ctx context.Context, username, email, password string) error {
	args := m.Called(ctx, username, email, password)
	return args.Error(0)
}

func (m *AuthValidatorMock) ValidateLogin(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateRegister", mock.Anything, "tilly", "tilly@example.com", "password123").Return(nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "tilly" &&
			u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 12
	}).Return(nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: " tilly ", Email: "tilly@example.com", Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), out.ID)
	assert.Equal(t, string(model.RoleCustomer), out.Role)
	assert.Empty(t, out.Groups)
}

func TestRegister_ValidatorError(t *testing.T) {
	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateRegister", mock.Anything, "tilly", "", "short").Return(errors.New("password must be at least 8 characters"))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "tilly", Password: "short"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assertErrContains(t, err, "at least 8")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateRegister", mock.Anything, "tilly", "", "password123").Return(nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "tilly", Password: "password123"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestLogin_IssuesToken(t *testing.T) {
	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	cfg := testConfig()
	uc := usecase.NewAuthUsecase(cfg, users, v)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	v.On("ValidateLogin", mock.Anything, "tilly", "password123").Return(nil)
	users.On("FindByUsername", mock.Anything, "tilly").Return(&model.User{
		ID: 12, Username: "tilly", PasswordHash: string(hash), IsActive: true,
	}, nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{Username: "tilly", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)

	token, err := jwt.Parse(out.AuthToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "12", claims["sub"])
	assert.NotEmpty(t, claims["jti"])
}

func TestLogin_Rejected(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     *model.User
		findErr  error
		password string
	}{
		{name: "unknown user", findErr: repo.ErrNotFound, password: "password123"},
		{name: "wrong password", user: &model.User{ID: 1, PasswordHash: string(hash), IsActive: true}, password: "nope-nope"},
		{name: "inactive", user: &model.User{ID: 1, PasswordHash: string(hash), IsActive: false}, password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			v := new(AuthValidatorMock)
			uc := usecase.NewAuthUsecase(testConfig(), users, v)

			v.On("ValidateLogin", mock.Anything, "tilly", tt.password).Return(nil)
			users.On("FindByUsername", mock.Anything, "tilly").Return(tt.user, tt.findErr)

			_, err := uc.Login(context.Background(), usecase.LoginInput{Username: "tilly", Password: tt.password})
			assert.ErrorIs(t, err, usecase.ErrValidation)
		})
	}
}

func TestMe(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, new(AuthValidatorMock))

	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{
		ID: 2, Username: "rider", Groups: []model.Group{{ID: 2, Name: model.GroupDeliveryCrew}},
	}, nil)

	out, err := uc.Me(context.Background(), deliveryCrew(2))
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleDeliveryCrew), out.Role)
	assert.Equal(t, []string{model.GroupDeliveryCrew}, out.Groups)
}
