package rest

import (
	"context"
	"net/http"

	"code-assist/internal/domain"
	"code-assist/internal/infra/logger"
	"code-assist/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AskRequest is the /ask payload. Missing fields decode as empty strings.
type AskRequest struct {
	Snippet  string `json:"snippet"`
	FilePath string `json:"file_path"`
}

// AskResponse carries either the matched content or the not-found message.
type AskResponse struct {
	Result string `json:"result"`
}

// Pinger reports whether the search backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	askUsecase    usecase.AskContextUsecase
	assistUsecase usecase.AssistUsecase
	backend       Pinger
	metrics       http.Handler
	log           *logger.ContextLogger
}

func NewHandler(
	askUsecase usecase.AskContextUsecase,
	assistUsecase usecase.AssistUsecase,
	backend Pinger,
	metrics http.Handler,
	log *logger.ContextLogger,
) *Handler {
	return &Handler{
		askUsecase:    askUsecase,
		assistUsecase: assistUsecase,
		backend:       backend,
		metrics:       metrics,
		log:           log,
	}
}

// Ask returns the most relevant indexed content for a snippet
// (POST /ask)
func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := logger.WithFilePath(c.Request().Context(), req.FilePath)
	outcome := h.askUsecase.Execute(ctx, domain.Query{Snippet: req.Snippet, FilePath: req.FilePath})

	switch outcome.Kind {
	case domain.OutcomeFound:
		return c.JSON(http.StatusOK, AskResponse{Result: outcome.Content})
	case domain.OutcomeNotFound:
		return c.JSON(http.StatusOK, AskResponse{Result: domain.NotFoundMessage})
	default:
		return c.NoContent(http.StatusInternalServerError)
	}
}

// Assist returns assistance for the submitted project state
// (POST /assist)
func (h *Handler) Assist(c echo.Context) error {
	var state domain.ProjectState
	if err := c.Bind(&state); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, h.assistUsecase.Execute(ctx, state))
}

// Metrics renders the Prometheus text exposition
// (GET /metrics)
func (h *Handler) Metrics(c echo.Context) error {
	h.metrics.ServeHTTP(c.Response(), c.Request())
	return nil
}

// (GET /healthz)
func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings the search backend
// (GET /readyz)
func (h *Handler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.backend.Ping(ctx); err != nil {
		h.log.WithContext(ctx).WarnContext(ctx, "readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "search backend down"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
