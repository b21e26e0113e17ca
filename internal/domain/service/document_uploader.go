package service

import (
	"context"
	"io"

	"campus/internal/domain/entity"
)

// DocumentUploader stores credential documents and returns their durable URL.
type DocumentUploader interface {
	// Upload stores doc under folder and returns the URL it is reachable at
	Upload(ctx context.Context, folder string, doc *entity.Document) (string, error)

	// Close releases any resources held by the uploader
	Close() error
}

// StoredDocument is an open handle on a previously uploaded document.
type StoredDocument struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// DocumentReader streams previously uploaded documents back out of storage.
type DocumentReader interface {
	// Open fails with ErrNotFound when key does not exist
	Open(ctx context.Context, key string) (*StoredDocument, error)
}
