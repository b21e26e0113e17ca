package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the identity claims carried by a session token.
// Login tokens carry Username, registration tokens carry Role.
type Claims struct {
	IdentityID int64  `json:"id"`
	Username   string `json:"username,omitempty"`
	Role       string `json:"tipoUsuario,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies stateless session tokens.
type TokenService interface {
	// Issue signs claims with an expiry of now+ttl and returns the token and that expiry.
	Issue(claims Claims, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Verify checks signature and expiry. It fails with ErrTokenExpired or ErrTokenInvalid.
	Verify(token string) (*Claims, error)

	// TTL returns the configured session validity window.
	TTL() time.Duration
}
