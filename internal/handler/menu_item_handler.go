package handler

import (
	"net/http"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /menu-items のHTTP
type MenuItemHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewMenuItemHandler(uc *usecase.MenuUsecase) *MenuItemHandler {
	return &MenuItemHandler{uc: uc}
}

// POST / PUT。price は数値でも文字列でもよい
type MenuItemRequest struct {
	Title    string           `json:"title" validate:"required,max=255"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
	Featured bool             `json:"featured"`
	Category int64            `json:"category" validate:"required,gt=0"`
}

// PATCH（送られた項目だけ変更）
type MenuItemPatchRequest struct {
	Title    *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Price    *decimal.Decimal `json:"price"`
	Featured *bool            `json:"featured"`
	Category *int64           `json:"category" validate:"omitempty,gt=0"`
}

// 参照は誰でも、変更はManagerのみ
func (h *MenuItemHandler) RegisterRoutes(g *echo.Group, auth []echo.MiddlewareFunc) {
	managerOnly := withRole(auth, model.RoleManager)

	g.GET("/menu-items", h.list)
	g.POST("/menu-items", h.create, managerOnly...)
	g.GET("/menu-items/:id", h.detail)
	g.PUT("/menu-items/:id", h.replace, managerOnly...)
	g.PATCH("/menu-items/:id", h.patch, managerOnly...)
	g.DELETE("/menu-items/:id", h.delete, managerOnly...)
}

func (h *MenuItemHandler) list(c echo.Context) error {
	out, err := h.uc.ListMenuItems(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuItemHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuItemHandler) create(c echo.Context) error {
	var req MenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateMenuItem(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MenuItemHandler) replace(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req MenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ReplaceMenuItem(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuItemHandler) patch(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req MenuItemPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.PatchMenuItem(c.Request().Context(), id, usecase.MenuItemPatch{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuItemHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r MenuItemRequest) toInput() usecase.MenuItemInput {
	return usecase.MenuItemInput{
		Title:      r.Title,
		Price:      *r.Price,
		Featured:   r.Featured,
		CategoryID: r.Category,
	}
}
