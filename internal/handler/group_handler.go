package handler

import (
	"net/http"
	"strings"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /groups/manager, /groups/delivery-crew のHTTP（Managerのみ）
type GroupHandler struct {
	uc *usecase.GroupUsecase
}

func NewGroupHandler(uc *usecase.GroupUsecase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

type GroupMemberRequest struct {
	Username string `json:"username" query:"username"`
}

// URL上のパス → グループ名
var groupPaths = map[string]string{
	"/groups/manager":       model.GroupManager,
	"/groups/delivery-crew": model.GroupDeliveryCrew,
}

func (h *GroupHandler) RegisterRoutes(g *echo.Group, auth []echo.MiddlewareFunc) {
	managerOnly := withRole(auth, model.RoleManager)

	for path, group := range groupPaths {
		for _, p := range []string{path + "/users", path} {
			g.GET(p, h.list(group), managerOnly...)
			g.POST(p, h.add(group), managerOnly...)
			g.DELETE(p, h.remove(group), managerOnly...)
		}
	}
}

func (h *GroupHandler) list(group string) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := h.uc.ListMembers(c.Request().Context(), group)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

func (h *GroupHandler) add(group string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, err := bindUsername(c)
		if err != nil {
			return writeError(c, err)
		}

		out, err := h.uc.AddMember(c.Request().Context(), group, username)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, out)
	}
}

func (h *GroupHandler) remove(group string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, err := bindUsername(c)
		if err != nil {
			return writeError(c, err)
		}

		out, err := h.uc.RemoveMember(c.Request().Context(), group, username)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

// username はボディ、無ければクエリから
func bindUsername(c echo.Context) (string, error) {
	var req GroupMemberRequest
	if err := c.Bind(&req); err != nil {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" {
		req.Username = c.QueryParam("username")
	}
	return strings.TrimSpace(req.Username), nil
}
