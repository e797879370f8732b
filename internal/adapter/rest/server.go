package rest

import (
	"log/slog"

	appmiddleware "code-assist/internal/adapter/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// ServerOptions configures NewServer.
type ServerOptions struct {
	Logger          *slog.Logger
	OTelEnabled     bool
	OTelServiceName string
	Routes          RouteConfig
}

// NewServer creates the Echo server with the global middleware stack and routes.
func NewServer(h *Handler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(opts.Logger)

	if opts.OTelEnabled {
		e.Use(otelecho.Middleware(opts.OTelServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.RequestLogger(opts.Logger))
	e.Use(middleware.Recover())

	RegisterRoutes(e, h, opts.Routes)

	return e
}
