package rest

import (
	"github.com/labstack/echo/v4"
)

// RouteConfig carries the per-route middleware chains.
type RouteConfig struct {
	// Counting wraps /ask and /assist and must run before any rejection.
	Counting echo.MiddlewareFunc
	// AskLimit is optional and applies to /ask only.
	AskLimit echo.MiddlewareFunc
}

// RegisterRoutes mounts every endpoint on e.
func RegisterRoutes(e *echo.Echo, h *Handler, cfg RouteConfig) {
	ask := []echo.MiddlewareFunc{}
	assist := []echo.MiddlewareFunc{}
	if cfg.Counting != nil {
		ask = append(ask, cfg.Counting)
		assist = append(assist, cfg.Counting)
	}
	if cfg.AskLimit != nil {
		ask = append(ask, cfg.AskLimit)
	}

	e.POST("/ask", h.Ask, ask...)
	e.POST("/assist", h.Assist, assist...)
	e.GET("/metrics", h.Metrics)
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
