package handler

import (
	"net/http"
	"strconv"

	"campus/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DocumentHandlerParams holds dependencies for DocumentHandler, injected by Fx.
type DocumentHandlerParams struct {
	fx.In

	Reader service.DocumentReader
}

// DocumentHandler streams stored credential documents.
type DocumentHandler struct {
	reader service.DocumentReader
}

// NewDocumentHandler is the constructor for DocumentHandler
func NewDocumentHandler(params DocumentHandlerParams) *DocumentHandler {
	return &DocumentHandler{reader: params.Reader}
}

// Get handles GET /documents/*.
func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.reader.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer doc.Body.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	header := c.Response().Header()
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Cache-Control", "private, max-age=3600")
	if doc.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
	}

	return c.Stream(http.StatusOK, contentType, doc.Body)
}
