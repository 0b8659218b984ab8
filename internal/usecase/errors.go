package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	//401 未認証
	ErrUnauthenticated = errors.New("unauthenticated")
	//403 権限なし
	ErrForbidden = errors.New("forbidden")
	//400 入力不正
	ErrValidation = errors.New("validation error")
	//400 カートが空
	ErrEmptyCart = errors.New("cart empty")
	//404
	ErrNotFound = errors.New("not found")
)

// HTTPError はhandlerでそのままレスポンスに変換される。
// Err には判定用のsentinelか、500のときは元のエラーが入る。
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errUnauthenticated(msg string) error {
	return &HTTPError{Status: http.StatusUnauthorized, Message: msg, Err: ErrUnauthenticated}
}

func errForbidden(msg string) error {
	return &HTTPError{Status: http.StatusForbidden, Message: msg, Err: ErrForbidden}
}

func errValidation(msg string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg, Err: ErrValidation}
}

func errNotFound(msg string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: msg, Err: ErrNotFound}
}

func errEmptyCart() error {
	return &HTTPError{Status: http.StatusBadRequest, Message: "cart empty", Err: ErrEmptyCart}
}

// 想定外のDBエラー（500）。元のエラーはログ用に保持
func errDB(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "db error", Err: err}
}

// HTTPErrorならそのまま、それ以外は500にする
func asUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return errDB(err)
}
