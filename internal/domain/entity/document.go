package entity

import (
	"io"
	"path/filepath"
	"strings"
)

// AllowedDocumentExtensions lists the credential document formats accepted at registration.
var AllowedDocumentExtensions = []string{"pdf", "png", "jpeg", "jpg"}

var documentMediaTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
}

// Document is a credential document uploaded alongside a registration.
type Document struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Extension returns the lower-cased file extension without the leading dot.
func (d *Document) Extension() string {
	ext := filepath.Ext(d.Filename)

	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// HasAllowedExtension reports whether the document's extension is allow-listed.
func (d *Document) HasAllowedExtension() bool {
	ext := d.Extension()
	for _, allowed := range AllowedDocumentExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

// MediaType returns the fixed MIME type of the document's extension, or "" when
// the extension is not allow-listed. Client supplied content types are never used.
func (d *Document) MediaType() string {
	return MediaTypeForExtension(d.Extension())
}

// MediaTypeForExtension maps an allow-listed extension, with or without the
// leading dot, to its MIME type.
func MediaTypeForExtension(ext string) string {
	return documentMediaTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
}
