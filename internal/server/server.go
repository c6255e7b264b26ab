package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"paintingstore/internal/config"
	"paintingstore/internal/handler"
	"paintingstore/internal/metrics"
	appmw "paintingstore/internal/middleware"
	"paintingstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// サーバーを組み立てるのに必要なもの
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	Cache  usecase.CatalogCache // nilならキャッシュなし
	Log    logrus.FieldLogger

	// bcryptのコスト。0なら12
	BcryptCost int
}

// echoを組み立ててルートを登録する
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(d.Log)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmw.ContextLogger(d.Log))
	e.Use(requestLogger(d.Log))
	e.Use(metrics.Middleware())
	// panicはerrorとして上に返す。500への変換はerrorHandler
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			appmw.LoggerFrom(c).WithError(err).WithField("stack", string(stack)).Error("panic recovered")
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{d.Config.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("10M"))

	registerRoutes(e, d.Config, build(d))
	return e
}

// ハンドラから返ったerrorを {"error": "..."} で返す。
// echo.HTTPError以外は500
func errorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if inner, ok := he.Internal.(*echo.HTTPError); ok {
				he = inner
			}
			status = he.Code
			switch m := he.Message.(type) {
			case string:
				msg = m
			case error:
				msg = m.Error()
			default:
				msg = http.StatusText(status)
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, handler.ErrorResponse{Error: msg})
		}
		if werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}

// アクセスログ。5xxはerror、4xxはwarn
func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			switch {
			case v.Status >= http.StatusInternalServerError:
				entry.WithError(v.Error).Error("request")
			case v.Status >= http.StatusBadRequest:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}

// ctxがキャンセルされるまで待ち受け、その後グレースフルに止める
func Start(ctx context.Context, e *echo.Echo, addr string, log logrus.FieldLogger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http server listening")
		serveErr <- e.Start(addr)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
