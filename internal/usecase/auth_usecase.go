package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type UserOutput struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	IsSuperuser bool     `json:"is_superuser"`
	Groups      []string `json:"groups"`
	Role        string   `json:"role"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type TokenOutput struct {
	AuthToken string `json:"auth_token"`
	ExpiresIn int    `json:"expires_in"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
	}
}

// Register は顧客ユーザーを作る（グループなし）。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.Password); err != nil {
		return UserOutput{}, errValidation(err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, errDB(err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		IsActive:     true,
	}
	err = u.users.Create(ctx, user)
	if errors.Is(err, repo.ErrDuplicate) {
		return UserOutput{}, errValidation("username already exists")
	}
	if err != nil {
		return UserOutput{}, errDB(err)
	}

	return toUserOutput(user), nil
}

// Login はusername/passwordを照合してアクセストークンを発行する。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (TokenOutput, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := u.validator.ValidateLogin(ctx, in.Username, in.Password); err != nil {
		return TokenOutput{}, errValidation(err.Error())
	}

	//ユーザー取得
	user, err := u.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repo.ErrNotFound) {
		return TokenOutput{}, errValidation("unable to log in with provided credentials")
	}
	if err != nil {
		return TokenOutput{}, errDB(err)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return TokenOutput{}, errValidation("unable to log in with provided credentials")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return TokenOutput{}, errValidation("unable to log in with provided credentials")
	}

	token, expiresIn, err := u.issueAccessToken(user, time.Now())
	if err != nil {
		return TokenOutput{}, errDB(err)
	}
	return TokenOutput{AuthToken: token, ExpiresIn: expiresIn}, nil
}

// Me はログイン中ユーザーの情報とロール。
func (u *AuthUsecase) Me(ctx context.Context, p model.Principal) (UserOutput, error) {
	if p.UserID <= 0 {
		return UserOutput{}, errUnauthenticated("unauthorized")
	}

	user, err := u.users.FindByID(ctx, p.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, errUnauthenticated("unauthorized")
	}
	if err != nil {
		return UserOutput{}, errDB(err)
	}
	return toUserOutput(user), nil
}

// access token発行（HS256, subはユーザーID）
func (u *AuthUsecase) issueAccessToken(user *model.User, now time.Time) (string, int, error) {
	exp := now.Add(u.cfg.AccessTokenTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(u.cfg.AccessTokenTTL.Seconds()), nil
}

// model.UserをAPI返却用DTOに変換。
func toUserOutput(user *model.User) UserOutput {
	groups := user.GroupNames()
	return UserOutput{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		Groups:      groups,
		Role:        string(model.ResolveRole(user.IsSuperuser, groups)),
	}
}
