package handler

import (
	"net/http"
	"strconv"

	"littlelemon/internal/domain/model"
	"littlelemon/internal/middleware"
	"littlelemon/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			logInternal(c, err)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	logInternal(c, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func logInternal(c echo.Context, err error) {
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	c.Logger().Errorf("request_id=%s %s %s: %v", rid, c.Request().Method, c.Path(), err)
}

// Bindして `validate:` タグを検証する。失敗は400のHTTPError
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func getPrincipal(c echo.Context) (model.Principal, bool) {
	return middleware.PrincipalFrom(c)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	p, ok := getPrincipal(c)
	if !ok {
		return 0, false
	}
	return p.UserID, true
}

// 認証のmiddlewareの後ろにロール確認を足す（元のスライスは変更しない）
func withRole(auth []echo.MiddlewareFunc, roles ...model.Role) []echo.MiddlewareFunc {
	mws := make([]echo.MiddlewareFunc, 0, len(auth)+1)
	mws = append(mws, auth...)
	return append(mws, middleware.RequireRole(roles...))
}
