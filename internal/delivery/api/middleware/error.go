// Package middleware contains the API-specific echo middleware.
package middleware

import (
	"log/slog"
	"net/http"

	"campus/internal/delivery/api/response"
	deliverycontext "campus/internal/delivery/context"
	domainerrors "campus/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// plainServerErrorMessage is the text/plain body of a 500 on plain routes.
const plainServerErrorMessage = "Error del servidor."

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// ErrorFormat marks every route it wraps with the error body format to use.
func ErrorFormat(format string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deliverycontext.SetErrorFormat(c, format)

			return next(c)
		}
	}
}

// resolvedError is what the client is told about a failure.
type resolvedError struct {
	status  int
	code    string
	message string
	details string
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resolved := m.resolve(err, c)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resolved.status)

		return
	}

	switch deliverycontext.GetErrorFormat(c) {
	case response.FormatPlainText:
		message := resolved.message
		if resolved.status >= http.StatusInternalServerError {
			message = plainServerErrorMessage
		}
		_ = response.PlainError(c, resolved.status, message)
	case response.FormatLegacyJSON:
		_ = response.LegacyError(c, resolved.status, resolved.message)
	default:
		_ = response.Error(c, resolved.status, resolved.code, resolved.message, resolved.details)
	}
}

func (m *ErrorMiddleware) resolve(err error, c echo.Context) resolvedError {
	// Attempt to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return resolvedError{
			status:  appErr.HTTPCode(),
			code:    appErr.ErrorCode(),
			message: appErr.Message(),
			details: appErr.Details(),
		}
	}

	// Check if it is an Echo HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnhandled(err, c)
			message = domainerrors.ErrInternalError.Message()
		}

		return resolvedError{status: httpErr.Code, code: "HTTP_ERROR", message: message}
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	m.logUnhandled(err, c)

	return resolvedError{
		status:  http.StatusInternalServerError,
		code:    domainerrors.ErrInternalError.ErrorCode(),
		message: domainerrors.ErrInternalError.Message(),
	}
}

func (m *ErrorMiddleware) logUnhandled(err error, c echo.Context) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
