package middleware

import (
	"errors"
	"net/http"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/repository"

	"github.com/labstack/echo/v4"
)

// Identity はAuthJWTが入れたuser_idでDBから最新のユーザーを読み、
// ロールを決めてPrincipalとしてcontextに保存する。
// 削除・停止されたユーザーは401。
func Identity(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//グループ込みで取得
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				c.Logger().Errorf("identity: load user %d: %v", userID, err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if user == nil || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("user inactive or deleted"))
			}

			c.Set(CtxPrincipalKey, model.NewPrincipal(*user))
			return next(c)
		}
	}
}

// Auth はJWT検証とユーザー読み込みをまとめたもの。
func Auth(jwtMW echo.MiddlewareFunc, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{jwtMW, Identity(userRepo)}
}

// PrincipalFrom はIdentityが保存したPrincipalを取り出す。
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(CtxPrincipalKey).(model.Principal)
	if !ok || p.UserID <= 0 {
		return model.Principal{}, false
	}
	return p, true
}
