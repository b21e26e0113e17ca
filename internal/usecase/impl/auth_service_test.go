package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"campus/config"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"
	mockRepo "campus/internal/mocks/repository"
	mockService "campus/internal/mocks/service"
	"campus/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	repo   *mockRepo.MockIdentityRepository
	hasher *mockService.MockPasswordHasher
	tokens *mockService.MockTokenService
	svc    usecase.AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		repo:   mockRepo.NewMockIdentityRepository(t),
		hasher: mockService.NewMockPasswordHasher(t),
		tokens: mockService.NewMockTokenService(t),
	}
	f.svc = NewAuthService(AuthServiceParams{
		IdentityRepo: f.repo,
		Hasher:       f.hasher,
		TokenService: f.tokens,
		Config:       &config.Config{Auth: &config.AuthConfig{MinPasswordLength: 4}},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func TestAuthService_Login_ShortPasswordRejectedBeforeLookup(t *testing.T) {
	for _, password := range []string{"", "a", "ab", "abc", "ñé1"} {
		t.Run(password, func(t *testing.T) {
			f := newAuthFixture(t)

			out, err := f.svc.Login(context.Background(), &usecase.LoginInput{Email: "ana@x.com", Password: password})

			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
		})
	}
}

func TestAuthService_Login_MissingEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), &usecase.LoginInput{Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthService_Login_StudentMatch(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)
	student := &entity.Identity{ID: 7, Role: entity.RoleStudent, Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ana@x.com").Return(student, nil)
	f.hasher.EXPECT().Check("secret1", "hash").Return(true)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().
		Issue(service.Claims{IdentityID: 7, Username: "Ana", Role: "student"}, time.Hour).
		Return("signed", expires, nil)

	out, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "ana@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "Ana", out.DisplayName)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, expires, out.ExpiresAt)
	assert.Same(t, student, out.Identity)
}

func TestAuthService_Login_TrimsEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	student := &entity.Identity{ID: 7, Role: entity.RoleStudent, Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ana@x.com").Return(student, nil)
	f.hasher.EXPECT().Check(" secret1 ", "hash").Return(true)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().Issue(mock.Anything, time.Hour).Return("signed", time.Now().Add(time.Hour), nil)

	out, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "  ana@x.com\t", Password: " secret1 "})

	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
}

func TestAuthService_Login_BlankEmailIsMissing(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), &usecase.LoginInput{Email: "   ", Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthService_Login_FallsBackToTeacher(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	teacher := &entity.Identity{ID: 3, Role: entity.RoleTeacher, Name: "Luis", Email: "luis@x.com", PasswordHash: "hash"}

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "luis@x.com").Return(nil, repository.ErrIdentityNotFound).Once()
	f.repo.EXPECT().FindByEmail(ctx, entity.RoleTeacher, "luis@x.com").Return(teacher, nil).Once()
	f.hasher.EXPECT().Check("secret1", "hash").Return(true)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().
		Issue(mock.MatchedBy(func(c service.Claims) bool { return c.IdentityID == 3 && c.Role == "teacher" }), time.Hour).
		Return("signed", time.Now().Add(time.Hour), nil)

	out, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "luis@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "Luis", out.DisplayName)
	assert.Equal(t, int64(3), out.Identity.ID)
}

func TestAuthService_Login_NotFoundInEitherPartition(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ghost@x.com").Return(nil, repository.ErrIdentityNotFound)
	f.repo.EXPECT().FindByEmail(ctx, entity.RoleTeacher, "ghost@x.com").Return(nil, repository.ErrIdentityNotFound)

	_, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "ghost@x.com", Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrIdentityNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	student := &entity.Identity{ID: 7, Role: entity.RoleStudent, Name: "Ana", PasswordHash: "hash"}

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ana@x.com").Return(student, nil)
	f.hasher.EXPECT().Check("wrong", "hash").Return(false)

	_, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "ana@x.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.NotContains(t, appErr.Message(), "ana@x.com")
}

func TestAuthService_Login_StoreFailureIsServerError(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ana@x.com").Return(nil, errors.New("connection refused"))

	_, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "ana@x.com", Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestAuthService_Login_TokenFailureIsServerError(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	student := &entity.Identity{ID: 7, Role: entity.RoleStudent, Name: "Ana", PasswordHash: "hash"}

	f.repo.EXPECT().FindByEmail(ctx, entity.RoleStudent, "ana@x.com").Return(student, nil)
	f.hasher.EXPECT().Check("secret1", "hash").Return(true)
	f.tokens.EXPECT().TTL().Return(time.Hour)
	f.tokens.EXPECT().Issue(mock.Anything, time.Hour).Return("", time.Time{}, errors.New("sign failed"))

	_, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "ana@x.com", Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}

func TestAuthService_VerifySession(t *testing.T) {
	f := newAuthFixture(t)
	claims := &service.Claims{IdentityID: 7, Username: "Ana"}

	f.tokens.EXPECT().Verify("good").Return(claims, nil)
	f.tokens.EXPECT().Verify("stale").Return(nil, errors.WithStack(domainerrors.ErrTokenExpired))

	got, err := f.svc.VerifySession(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, claims, got)

	_, err = f.svc.VerifySession(context.Background(), "stale")
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)

	_, err = f.svc.VerifySession(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}
