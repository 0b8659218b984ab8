package middleware

import (
	"net/http"

	"littlelemon/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRole はcontextのPrincipalのロールが roles のどれかか確認します。
// Identityの後ろで使う。
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, r := range roles {
				if p.Is(r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON("you do not have permission to perform this action"))
		}
	}
}
