package server

import (
	"net/http"
	"time"

	"paintingstore/internal/config"
	"paintingstore/internal/handler"
	"paintingstore/internal/metrics"
	appmw "paintingstore/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	authJWT := appmw.AuthJWT(cfg)
	adminOnly := appmw.AdminRoleGuard()

	// /auth はIPごとにレート制限
	authGroup := e.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		authGroup.Use(authRateLimiter(cfg.AuthRateLimit))
	}
	h.auth.RegisterRoutes(authGroup)

	h.painting.RegisterRoutes(e, authJWT, adminOnly)
	h.order.RegisterRoutes(e, authJWT, adminOnly)

	// /admin 配下は全部「JWT必須 + ADMIN限定」
	admin := e.Group("/admin", authJWT, adminOnly)
	h.painting.RegisterAdminRoutes(admin)
	h.adminOrder.RegisterRoutes(admin)
	h.adminUser.RegisterRoutes(admin)
}

func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, handler.ErrorResponse{Error: "forbidden"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, handler.ErrorResponse{Error: "too many requests"})
		},
	})
}
