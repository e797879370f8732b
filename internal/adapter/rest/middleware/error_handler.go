package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"code-assist/internal/infra/logger"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomHTTPErrorHandler renders 4xx errors as JSON and 5xx errors as a bare
// status code, so backend details never reach the client.
func CustomHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		requestID := logger.RequestIDFrom(ctx)
		status := statusFor(err)

		if status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "unhandled error",
				"request_id", requestID,
				"status", status,
				"error", err.Error())
			if writeErr := c.NoContent(status); writeErr != nil {
				log.ErrorContext(ctx, "failed to send error response", "request_id", requestID, "error", writeErr)
			}
			return
		}

		msg := http.StatusText(status)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		log.WarnContext(ctx, "HTTP error",
			"request_id", requestID,
			"status", status,
			"message", msg)

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: msg})
		}
		if err != nil {
			log.ErrorContext(ctx, "failed to send error response", "request_id", requestID, "error", err)
		}
	}
}

func statusFor(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
