package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/repository"
	"littlelemon/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// 終了時に処理中のリクエストを待つ時間
const shutdownTimeout = 10 * time.Second

// New はmiddlewareとルートを設定したechoを返す。
func New(cfg config.Config, logger *log.Logger, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.Validator = validator.NewRequestValidator()

	//末尾スラッシュは無視
	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Infoj(log.JSON{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
			})
			return nil
		},
	}))
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, userRepo, h)
	return e
}

// Start はSIGINT/SIGTERMを受けるまで待ち受け、受けたら処理中のリクエストを待って止める。
func Start(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// NewLogger はLOG_LEVELに合わせたロガー
func NewLogger(level string) *log.Logger {
	logger := log.New("littlelemon")
	switch level {
	case "debug":
		logger.SetLevel(log.DEBUG)
	case "warn":
		logger.SetLevel(log.WARN)
	case "error":
		logger.SetLevel(log.ERROR)
	default:
		logger.SetLevel(log.INFO)
	}
	return logger
}
