package context

import (
	"campus/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// KeySessionClaims is the key for storing verified session claims in echo.Context.
	KeySessionClaims ContextKey = "session_claims"

	// KeyErrorFormat is the key for storing the error body format of the matched route.
	KeyErrorFormat ContextKey = "error_format"
)

// SetSessionClaims stores the claims of a verified session token.
func SetSessionClaims(c echo.Context, claims *service.Claims) {
	c.Set(string(KeySessionClaims), claims)
}

// GetSessionClaims returns the claims stored by SetSessionClaims.
func GetSessionClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(string(KeySessionClaims)).(*service.Claims)

	return claims, ok && claims != nil
}

// SetErrorFormat records how errors on the current route are rendered.
func SetErrorFormat(c echo.Context, format string) {
	c.Set(string(KeyErrorFormat), format)
}

// GetErrorFormat returns the format set by SetErrorFormat, or "" when none was set.
func GetErrorFormat(c echo.Context) string {
	format, _ := c.Get(string(KeyErrorFormat)).(string)

	return format
}
