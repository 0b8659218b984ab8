package server

import (
	"net/http"

	"littlelemon/internal/config"
	"littlelemon/internal/handler"
	"littlelemon/internal/middleware"
	"littlelemon/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers はルートに載せるhandlerの集まり
type Handlers struct {
	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	MenuItems  *handler.MenuItemHandler
	Cart       *handler.CartHandler
	Orders     *handler.OrderHandler
	Groups     *handler.GroupHandler
}

// RegisterRoutes は /api 以下と /healthz を登録する。
func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	auth := middleware.Auth(middleware.AuthJWT(cfg), userRepo)

	h.Auth.RegisterRoutes(api, auth)
	h.Categories.RegisterRoutes(api, auth)
	h.MenuItems.RegisterRoutes(api, auth)
	h.Cart.RegisterRoutes(api, auth)
	h.Orders.RegisterRoutes(api, auth)
	h.Groups.RegisterRoutes(api, auth)
}
