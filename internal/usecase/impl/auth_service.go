// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"campus/config"
	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"
	"campus/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identityRepo      repository.IdentityRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	minPasswordLength int
	validate          *validator.Validate
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identityRepo:      params.IdentityRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		minPasswordLength: minPasswordLength(params.Config),
		validate:          newValidator(),
		logger:            params.Logger,
	}
}

func minPasswordLength(cfg *config.Config) int {
	if cfg != nil && cfg.Auth != nil && cfg.Auth.MinPasswordLength > 0 {
		return cfg.Auth.MinPasswordLength
	}

	return config.DefaultMinPasswordLength
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login searches the student partition, then the teacher partition, and issues
// a session token for the first identity whose email matches.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if !passwordLongEnough(input.Password, srv.minPasswordLength) {
		return nil, domainerrors.ErrPasswordTooShort.WrapMessage("login rejected")
	}

	input.Email = strings.TrimSpace(input.Email)
	if err := validateRequired(srv.validate, input); err != nil {
		return nil, err
	}

	identity, err := srv.findIdentity(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		srv.log(ctx).Info("Login failed: password mismatch", slog.String("role", identity.Role.String()), slog.Int64("identity_id", identity.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, expiresAt, err := srv.tokenService.Issue(service.Claims{
		IdentityID: identity.ID,
		Username:   identity.DisplayName(),
		Role:       identity.Role.String(),
	}, srv.tokenService.TTL())
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Int64("identity_id", identity.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue session token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("role", identity.Role.String()), slog.Int64("identity_id", identity.ID))

	return &usecase.LoginOutput{
		DisplayName: identity.DisplayName(),
		Token:       token,
		ExpiresAt:   expiresAt,
		Identity:    identity,
	}, nil
}

// findIdentity walks entity.LookupOrder. The next partition is queried only
// when the previous one has no match.
func (srv *authService) findIdentity(ctx context.Context, email string) (*entity.Identity, error) {
	for _, role := range entity.LookupOrder {
		identity, err := srv.identityRepo.FindByEmail(ctx, role, email)
		if err == nil {
			return identity, nil
		}
		if errors.Is(err, repository.ErrIdentityNotFound) {
			continue
		}

		srv.log(ctx).Error("Failed to look up identity", slog.String("role", role.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to look up identity")
	}

	return nil, domainerrors.ErrIdentityNotFound.WrapMessage("no identity for email")
}

// VerifySession checks a token previously issued by Login or Register.
func (srv *authService) VerifySession(_ context.Context, token string) (*service.Claims, error) {
	if token == "" {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("missing session token")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify session token")
	}

	return claims, nil
}
