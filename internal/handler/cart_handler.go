package handler

import (
	"net/http"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	MenuItem int64 `json:"menuitem" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"gte=1,lte=32767"`
}

// /cart, /cart/{menuItemID} を登録（Customerのみ）
func (h *CartHandler) RegisterRoutes(g *echo.Group, auth []echo.MiddlewareFunc) {
	cart := g.Group("/cart", withRole(auth, model.RoleCustomer)...)

	cart.GET("", h.list)
	cart.POST("", h.add)
	cart.DELETE("", h.clear)
	cart.DELETE("/:menuItemID", h.remove)
}

func (h *CartHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Add(c.Request().Context(), userID, usecase.AddCartInput{
		MenuItemID: req.MenuItem,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	menuItemID, ok := parseIDParam(c, "menuItemID")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Remove(c.Request().Context(), userID, menuItemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
