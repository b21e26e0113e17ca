package handler

import (
	"net/http"
	"time"

	"campus/internal/delivery/api/response"
	deliverycontext "campus/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the identity behind a verified session token.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	IdentityID int64     `json:"id"`
	Username   string    `json:"username,omitempty"`
	Role       string    `json:"tipoUsuario,omitempty"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Me handles GET /me. It must run behind SessionMiddleware.Authenticate.
func (h *SessionHandler) Me(c echo.Context) error {
	claims, ok := deliverycontext.GetSessionClaims(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Token inválido.")
	}

	resp := SessionResponse{
		IdentityID: claims.IdentityID,
		Username:   claims.Username,
		Role:       claims.Role,
	}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	return response.Success(c, http.StatusOK, resp)
}
