package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus/internal/delivery/api/response"
	domainerrors "campus/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorContext(method, format string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if format != "" {
		_ = ErrorFormat(format)(func(echo.Context) error { return nil })(c)
	}

	return c, rec
}

func TestHandleHTTPError_Formats(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name        string
		format      string
		err         error
		wantStatus  int
		wantBody    string
		wantJSON    bool
		wantCode    string
		wantDetails any
	}{
		{
			name:       "plain app error",
			format:     response.FormatPlainText,
			err:        errors.WithStack(domainerrors.ErrIdentityNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "Usuario no encontrado.",
		},
		{
			name:       "plain server error hides message",
			format:     response.FormatPlainText,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   plainServerErrorMessage,
		},
		{
			name:       "legacy json",
			format:     response.FormatLegacyJSON,
			err:        domainerrors.ErrMissingFields.WithDetails("missing: Email"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Todos los campos son requeridos."}`,
			wantJSON:   true,
		},
		{
			name:        "envelope keeps 4xx details",
			err:         domainerrors.ErrMissingFields.WithDetails("missing: Email"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "MISSING_FIELDS",
			wantDetails: "missing: Email",
		},
		{
			name:       "envelope unknown error",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "envelope echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newErrorContext(http.MethodPost, tt.format)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			switch {
			case tt.wantBody != "" && tt.wantJSON:
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			case tt.wantBody != "":
				assert.Equal(t, tt.wantBody, rec.Body.String())
			default:
				var body response.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.wantCode, body.Error.Code)
				assert.Equal(t, tt.wantDetails, body.Error.Details)
			}
		})
	}
}

func TestHandleHTTPError_HeadHasNoBody(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, rec := newErrorContext(http.MethodHead, "")

	m.HandleHTTPError(domainerrors.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleHTTPError_SkipsCommittedResponse(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, rec := newErrorContext(http.MethodGet, "")
	require.NoError(t, c.String(http.StatusOK, "partial"))

	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
