package handler

import (
	"net/http"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /categories のHTTP
type CategoryHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewCategoryHandler(uc *usecase.MenuUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CreateCategoryRequest struct {
	Slug  string `json:"slug" validate:"required,max=255"`
	Title string `json:"title" validate:"required,max=255"`
}

// 一覧は誰でも、作成はManagerのみ
func (h *CategoryHandler) RegisterRoutes(g *echo.Group, auth []echo.MiddlewareFunc) {
	g.GET("/categories", h.list)
	g.POST("/categories", h.create, withRole(auth, model.RoleManager)...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context(), c.QueryParam("ordering"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Slug:  req.Slug,
		Title: req.Title,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
