package middleware

import (
	"log/slog"

	"code-assist/internal/infra/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLogger writes one line per completed request. Probe and scrape
// endpoints are skipped.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Request().URL.Path {
			case "/healthz", "/readyz", "/metrics":
				return true
			}
			return false
		},
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			attrs := []any{
				"request_id", logger.RequestIDFrom(ctx),
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error == nil {
				log.InfoContext(ctx, "request completed", attrs...)
			} else {
				log.ErrorContext(ctx, "request failed", append(attrs, "error", v.Error.Error())...)
			}
			return nil
		},
	})
}
