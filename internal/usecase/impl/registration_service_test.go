package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"campus/config"
	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/service"
	mockRepo "campus/internal/mocks/repository"
	mockService "campus/internal/mocks/service"
	"campus/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	repo      *mockRepo.MockIdentityRepository
	hasher    *mockService.MockPasswordHasher
	tokens    *mockService.MockTokenService
	uploader  *mockService.MockDocumentUploader
	publisher *mockService.MockEventPublisher
	svc       usecase.RegistrationUsecase
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	f := &registrationFixture{
		repo:      mockRepo.NewMockIdentityRepository(t),
		hasher:    mockService.NewMockPasswordHasher(t),
		tokens:    mockService.NewMockTokenService(t),
		uploader:  mockService.NewMockDocumentUploader(t),
		publisher: mockService.NewMockEventPublisher(t),
	}
	f.svc = NewRegistrationService(RegistrationServiceParams{
		IdentityRepo: f.repo,
		Hasher:       f.hasher,
		TokenService: f.tokens,
		Uploader:     f.uploader,
		Publisher:    f.publisher,
		Config: &config.Config{
			Auth:    &config.AuthConfig{MinPasswordLength: 4},
			Storage: &config.StorageConfig{Folder: "analisis"},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func validRegisterInput(filename string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Name:     "Ana",
		Surname:  "Lopez",
		Email:    "ana@x.com",
		Password: "secret1",
		Role:     "student",
		Document: &entity.Document{
			Filename: filename,
			Body:     strings.NewReader("png-bytes"),
		},
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")
	input := validRegisterInput("carnet.PNG")
	expires := time.Now().Add(time.Hour)

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("https://cdn.test/analisis/abc.png", nil)
	f.hasher.EXPECT().Hash("secret1").Return("$2a$10$hash", nil)
	f.repo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Identity")).
		Run(func(_ context.Context, identity *entity.Identity) {
			assert.Equal(t, entity.RoleStudent, identity.Role)
			assert.Equal(t, "$2a$10$hash", identity.PasswordHash)
			assert.Equal(t, "https://cdn.test/analisis/abc.png", identity.DocumentURL)
			identity.ID = 42
		}).
		Return(nil)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().Issue(service.Claims{IdentityID: 42, Role: "student"}, time.Hour).Return("signed", expires, nil)
	f.publisher.EXPECT().PublishIdentityRegistered(ctx, mock.MatchedBy(func(e *service.IdentityRegisteredEvent) bool {
		return e.IdentityID == 42 && e.RequestID == "req-1" && e.Role == "student" && e.Email == "ana@x.com"
	})).Return(nil)

	out, err := f.svc.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Alumno registrado con éxito", out.Message)
	assert.Equal(t, int64(42), out.Identity.ID)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, expires, out.ExpiresAt)
	assert.Equal(t, "https://cdn.test/analisis/abc.png", out.DocumentURL)
}

func TestRegistrationService_Register_TeacherMessage(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	input := validRegisterInput("cv.pdf")
	input.Role = "teacher"

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("https://cdn.test/analisis/cv.pdf", nil)
	f.hasher.EXPECT().Hash("secret1").Return("hash", nil)
	f.repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().Issue(mock.Anything, time.Hour).Return("signed", time.Now(), nil)
	f.publisher.EXPECT().PublishIdentityRegistered(ctx, mock.Anything).Return(nil)

	out, err := f.svc.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Profesor registrado con éxito", out.Message)
	assert.Equal(t, entity.RoleTeacher, out.Identity.Role)
}

// No collaborator expectations are set: mockery mocks fail the test on any
// unexpected call, so these cases also prove no I/O happened.
func TestRegistrationService_Register_ValidationBeforeIO(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.RegisterInput)
		want   error
	}{
		{"missing name", func(in *usecase.RegisterInput) { in.Name = "" }, domainerrors.ErrMissingFields},
		{"blank surname", func(in *usecase.RegisterInput) { in.Surname = "   " }, domainerrors.ErrMissingFields},
		{"missing email", func(in *usecase.RegisterInput) { in.Email = "" }, domainerrors.ErrMissingFields},
		{"missing password", func(in *usecase.RegisterInput) { in.Password = "" }, domainerrors.ErrMissingFields},
		{"missing role", func(in *usecase.RegisterInput) { in.Role = "" }, domainerrors.ErrMissingFields},
		{"unknown role", func(in *usecase.RegisterInput) { in.Role = "admin" }, domainerrors.ErrInvalidRole},
		{"legacy role alias", func(in *usecase.RegisterInput) { in.Role = "alumno" }, domainerrors.ErrInvalidRole},
		{"role wrong case", func(in *usecase.RegisterInput) { in.Role = "Student" }, domainerrors.ErrInvalidRole},
		{"short password", func(in *usecase.RegisterInput) { in.Password = "abc" }, domainerrors.ErrPasswordTooShort},
		{"no document", func(in *usecase.RegisterInput) { in.Document = nil }, domainerrors.ErrDocumentMissing},
		{"document without body", func(in *usecase.RegisterInput) { in.Document.Body = nil }, domainerrors.ErrDocumentMissing},
		{"exe with image content type", func(in *usecase.RegisterInput) { in.Document.Filename = "virus.exe" }, domainerrors.ErrUnsupportedMediaType},
		{"no extension", func(in *usecase.RegisterInput) { in.Document.Filename = "carnet" }, domainerrors.ErrUnsupportedMediaType},
		{"gif", func(in *usecase.RegisterInput) { in.Document.Filename = "carnet.gif" }, domainerrors.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture(t)
			input := validRegisterInput("carnet.png")
			tt.mutate(input)

			out, err := f.svc.Register(context.Background(), input)

			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistrationService_Register_MissingFieldsNamedInDetails(t *testing.T) {
	f := newRegistrationFixture(t)
	input := validRegisterInput("carnet.png")
	input.Name = ""
	input.Email = ""

	_, err := f.svc.Register(context.Background(), input)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "Name")
	assert.Contains(t, appErr.Details(), "Email")
}

func TestRegistrationService_Register_UploadFailure(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	input := validRegisterInput("carnet.jpg")

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("", errors.New("bucket unavailable"))

	_, err := f.svc.Register(ctx, input)

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotContains(t, err.Error(), "bucket unavailable")
}

func TestRegistrationService_Register_HashFailure(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	input := validRegisterInput("carnet.jpeg")

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("https://cdn.test/a.jpeg", nil)
	f.hasher.EXPECT().Hash("secret1").Return("", errors.New("entropy exhausted"))

	_, err := f.svc.Register(ctx, input)

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}

func TestRegistrationService_Register_PersistFailureLeavesNoToken(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	input := validRegisterInput("carnet.png")

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("https://cdn.test/a.png", nil)
	f.hasher.EXPECT().Hash("secret1").Return("hash", nil)
	f.repo.EXPECT().Create(ctx, mock.Anything).Return(domainerrors.NewDatabaseExecuteError(errors.New("duplicate key"), "insert"))

	out, err := f.svc.Register(ctx, input)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotContains(t, err.Error(), "duplicate key")
}

func TestRegistrationService_Register_PublishFailureIsIgnored(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	input := validRegisterInput("carnet.png")

	f.uploader.EXPECT().Upload(ctx, "analisis", input.Document).Return("https://cdn.test/a.png", nil)
	f.hasher.EXPECT().Hash("secret1").Return("hash", nil)
	f.repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().Issue(mock.Anything, time.Hour).Return("signed", time.Now(), nil)
	f.publisher.EXPECT().PublishIdentityRegistered(ctx, mock.Anything).Return(errors.New("topic not found"))

	out, err := f.svc.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
}
