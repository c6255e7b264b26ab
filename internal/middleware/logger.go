package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const CtxLoggerKey = "logger" // logrus.FieldLogger

// リクエストIDを付けたloggerをcontextに入れる
// RequestIDミドルウェアの後に置く
func ContextLogger(base logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			c.Set(CtxLoggerKey, base.WithField("request_id", rid))
			return next(c)
		}
	}
}

// contextのloggerを取り出す。無ければ標準logger
func LoggerFrom(c echo.Context) logrus.FieldLogger {
	if l, ok := c.Get(CtxLoggerKey).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}
