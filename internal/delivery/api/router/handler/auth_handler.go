package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"campus/config"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Multipart field names of the registration form.
const (
	formNombre      = "nombre"
	formApellido    = "apellido"
	formEmail       = "email"
	formContrasena  = "contraseña"
	formTipoUsuario = "tipoUsuario"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC         usecase.AuthUsecase
	RegistrationUC usecase.RegistrationUsecase
	Config         *config.Config
}

// AuthHandler serves login and registration with the legacy wire format.
type AuthHandler struct {
	authUC         usecase.AuthUsecase
	registrationUC usecase.RegistrationUsecase
	cookieName     string
	cookieSecure   bool
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	h := &AuthHandler{
		authUC:         params.AuthUC,
		registrationUC: params.RegistrationUC,
		cookieName:     config.DefaultCookieName,
	}
	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.CookieName != "" {
			h.cookieName = params.Config.Auth.CookieName
		}
		h.cookieSecure = params.Config.Auth.CookieSecure
	}

	return h
}

// LoginRequest is accepted as JSON or as a urlencoded form.
type LoginRequest struct {
	Usuario    string `json:"usuario" form:"usuario"`
	Contrasena string `json:"contraseña" form:"contraseña"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Usuario string `json:"usuario"`
	Token   string `json:"token"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Message  string        `json:"message"`
	User     *UserResponse `json:"user"`
	Token    string        `json:"token"`
	ImageURL string        `json:"imageUrl"`
}

// UserResponse is the persisted identity as returned to clients. It never carries the password hash.
type UserResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Email       string `json:"email"`
	Foto        string `json:"foto"`
	TipoUsuario string `json:"tipoUsuario"`
}

func newUserResponse(identity *entity.Identity) *UserResponse {
	return &UserResponse{
		ID:          identity.ID,
		Nombre:      identity.Name,
		Apellido:    identity.Surname,
		Email:       identity.Email,
		Foto:        identity.DocumentURL,
		TipoUsuario: identity.Role.String(),
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrInvalidInput, "invalid login body")
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Usuario,
		Password: req.Contrasena,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.Token, output.ExpiresAt))

	return c.JSON(http.StatusOK, LoginResponse{
		Usuario: output.DisplayName,
		Token:   output.Token,
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	document, closeDocument, err := h.documentFromForm(c)
	if err != nil {
		return err
	}
	defer closeDocument()

	output, err := h.registrationUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     c.FormValue(formNombre),
		Surname:  c.FormValue(formApellido),
		Email:    c.FormValue(formEmail),
		Password: c.FormValue(formContrasena),
		Role:     c.FormValue(formTipoUsuario),
		Document: document,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message:  output.Message,
		User:     newUserResponse(output.Identity),
		Token:    output.Token,
		ImageURL: output.DocumentURL,
	})
}

// documentFromForm returns the single file part of a multipart request, or nil
// when there is none. The file part may use any field name.
func (h *AuthHandler) documentFromForm(c echo.Context) (*entity.Document, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}

		return nil, noop, errors.Wrap(domainerrors.ErrInvalidInput, "malformed multipart body")
	}

	var files []*multipart.FileHeader
	for _, headers := range form.File {
		files = append(files, headers...)
	}

	switch len(files) {
	case 0:
		return nil, noop, nil
	case 1:
	default:
		return nil, noop, errors.WithStack(domainerrors.ErrInvalidInput.WithDetails("exactly one file must be uploaded"))
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return nil, noop, errors.Wrap(domainerrors.ErrInvalidInput, "unreadable file part")
	}

	return &entity.Document{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}, func() { _ = file.Close() }, nil
}

func (h *AuthHandler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	maxAge := int(time.Until(expiresAt).Round(time.Second).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}

	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
