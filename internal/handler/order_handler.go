package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders のHTTP。ロールごとの判定はusecase側
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, auth []echo.MiddlewareFunc) {
	orders := g.Group("/orders", auth...)

	orders.GET("", h.list)
	orders.POST("", h.checkout)
	orders.GET("/:id", h.detail)
	orders.PUT("/:id", h.update)
	orders.PATCH("/:id", h.update)
	orders.DELETE("/:id", h.delete)
}

func (h *OrderHandler) list(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), p, usecase.ListOrdersInput{
		Ordering: c.QueryParam("ordering"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.Get(c.Request().Context(), p, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT / PATCH とも送られたキーだけ更新する
func (h *OrderHandler) update(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	patch := map[string]json.RawMessage{}
	if err := json.NewDecoder(c.Request().Body).Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), p, id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Delete(c.Request().Context(), p, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
