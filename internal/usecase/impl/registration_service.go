package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campus/config"
	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"
	"campus/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	identityRepo      repository.IdentityRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	uploader          service.DocumentUploader
	publisher         service.EventPublisher
	folder            string
	minPasswordLength int
	validate          *validator.Validate
	now               func() time.Time
	logger            *slog.Logger
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Uploader     service.DocumentUploader
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	folder := config.DefaultDocumentFolder
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.Folder != "" {
		folder = params.Config.Storage.Folder
	}

	return &registrationService{
		identityRepo:      params.IdentityRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		uploader:          params.Uploader,
		publisher:         params.Publisher,
		folder:            folder,
		minPasswordLength: minPasswordLength(params.Config),
		validate:          newValidator(),
		now:               time.Now,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the form, uploads the document, hashes the password and
// inserts the identity into its partition.
//
// Upload and insert are not transactional. A failed insert leaves the uploaded
// document orphaned; its URL is logged so it can be cleaned up by hand.
func (srv *registrationService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role, err := srv.validateInput(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("role", role.String()), slog.String("email", input.Email))

	documentURL, err := srv.uploader.Upload(ctx, srv.folder, input.Document)
	if err != nil {
		srv.log(ctx).Error("Failed to upload credential document", slog.String("filename", input.Document.Filename), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to upload credential document")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.String("orphaned_document", documentURL), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to hash password")
	}

	identity := &entity.Identity{
		Role:         role,
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		PasswordHash: passwordHash,
		DocumentURL:  documentURL,
	}

	if err := srv.identityRepo.Create(ctx, identity); err != nil {
		srv.log(ctx).Error("Failed to persist identity", slog.String("role", role.String()), slog.String("orphaned_document", documentURL), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to persist identity")
	}

	token, expiresAt, err := srv.tokenService.Issue(service.Claims{
		IdentityID: identity.ID,
		Role:       role.String(),
	}, srv.tokenService.TTL())
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Int64("identity_id", identity.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue session token")
	}

	srv.publishRegistered(ctx, identity)

	srv.log(ctx).Info("Registration completed", slog.String("role", role.String()), slog.Int64("identity_id", identity.ID))

	return &usecase.RegisterOutput{
		Message:     fmt.Sprintf("%s registrado con éxito", role.Label()),
		Identity:    identity,
		Token:       token,
		ExpiresAt:   expiresAt,
		DocumentURL: documentURL,
	}, nil
}

// validateInput runs every check that needs no I/O, in order: required
// fields, role, password length, document presence, extension.
func (srv *registrationService) validateInput(input *usecase.RegisterInput) (entity.Role, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Surname = strings.TrimSpace(input.Surname)
	input.Email = strings.TrimSpace(input.Email)
	input.Role = strings.TrimSpace(input.Role)

	if err := validateRequired(srv.validate, input); err != nil {
		return "", err
	}

	role, ok := entity.ParseRole(input.Role)
	if !ok {
		return "", domainerrors.ErrInvalidRole.WithDetails("role must be student or teacher")
	}

	if !passwordLongEnough(input.Password, srv.minPasswordLength) {
		return "", domainerrors.ErrPasswordTooShort.WrapMessage("registration rejected")
	}

	if input.Document == nil || input.Document.Body == nil {
		return "", domainerrors.ErrDocumentMissing.WrapMessage("no document attached")
	}

	if !input.Document.HasAllowedExtension() {
		return "", domainerrors.ErrUnsupportedMediaType.WithDetails("extension: " + input.Document.Extension())
	}

	return role, nil
}

// publishRegistered is best effort: a failure is logged and never reaches the caller.
func (srv *registrationService) publishRegistered(ctx context.Context, identity *entity.Identity) {
	event := &service.IdentityRegisteredEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		IdentityID:   identity.ID,
		Role:         identity.Role.String(),
		Email:        identity.Email,
		DocumentURL:  identity.DocumentURL,
		RegisteredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishIdentityRegistered(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish identity registered event", slog.Int64("identity_id", identity.ID), slog.Any("error", err))
	}
}
