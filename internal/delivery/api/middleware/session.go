package middleware

import (
	"strings"

	"campus/config"
	deliverycontext "campus/internal/delivery/context"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// SessionMiddleware authenticates requests carrying a session token, either
// as a bearer Authorization header or as the session cookie.
type SessionMiddleware struct {
	authUC     usecase.AuthUsecase
	cookieName string
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(authUC usecase.AuthUsecase, cfg *config.Config) *SessionMiddleware {
	cookieName := config.DefaultCookieName
	if cfg != nil && cfg.Auth != nil && cfg.Auth.CookieName != "" {
		cookieName = cfg.Auth.CookieName
	}

	return &SessionMiddleware{authUC: authUC, cookieName: cookieName}
}

// Authenticate verifies the token and stores its claims for the handler.
// The header wins when both header and cookie are present.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := m.extractToken(c)
		if err != nil {
			return err
		}

		claims, err := m.authUC.VerifySession(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetSessionClaims(c, claims)

		return next(c)
	}
}

func (m *SessionMiddleware) extractToken(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		token, found := strings.CutPrefix(header, bearerPrefix)
		if !found || token == "" {
			return "", domainerrors.ErrTokenInvalid.WrapMessage("authorization header must be a bearer token")
		}

		return token, nil
	}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", domainerrors.ErrTokenInvalid.WrapMessage("no session token presented")
	}

	return cookie.Value, nil
}
