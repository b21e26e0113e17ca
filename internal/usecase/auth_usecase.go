// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"campus/internal/domain/entity"
	"campus/internal/domain/service"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	DisplayName string
	Token       string
	ExpiresAt   time.Time
	Identity    *entity.Identity
}

// AuthUsecase authenticates identities from either partition and verifies the
// session tokens it hands out.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifySession(ctx context.Context, token string) (*service.Claims, error)
}

// RegisterInput carries a registration form and its credential document.
type RegisterInput struct {
	Name     string           `validate:"required"`
	Surname  string           `validate:"required"`
	Email    string           `validate:"required"`
	Password string           `validate:"required"`
	Role     string           `validate:"required"`
	Document *entity.Document `validate:"-"`
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	Message     string
	Identity    *entity.Identity
	Token       string
	ExpiresAt   time.Time
	DocumentURL string
}

// RegistrationUsecase creates identities in the partition matching their role.
type RegistrationUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
}
