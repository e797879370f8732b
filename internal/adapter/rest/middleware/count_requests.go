package middleware

import (
	"code-assist/internal/port"

	"github.com/labstack/echo/v4"
)

// CountRequests increments the request counter before the handler runs, so
// every arrival is counted whatever its outcome.
func CountRequests(metrics port.RequestMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.IncRequests()
			return next(c)
		}
	}
}
