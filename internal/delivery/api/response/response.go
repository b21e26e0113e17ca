// Package response renders API bodies: the success/error envelope and the
// legacy shapes kept by /login and /register.
package response

import (
	"net/http"

	deliverycontext "campus/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Error body formats a route can select.
const (
	// FormatEnvelope renders ErrorResponse. It is the default.
	FormatEnvelope = "envelope"
	// FormatPlainText renders the bare message as text/plain.
	FormatPlainText = "plain"
	// FormatLegacyJSON renders {"error": message}.
	FormatLegacyJSON = "legacy_json"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "MISSING_FIELDS"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// LegacyErrorResponse is the {"error": "..."} body of the registration endpoint.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if hidesDetails(statusCode) || details == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// PlainError writes message as a text/plain body.
func PlainError(c echo.Context, statusCode int, message string) error {
	return c.String(statusCode, message)
}

// LegacyError writes {"error": message}.
func LegacyError(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, LegacyErrorResponse{Error: message})
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

func hidesDetails(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden
}
