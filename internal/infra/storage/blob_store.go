// Package storage keeps credential documents in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"campus/config"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/entity"
	"campus/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// bucket drivers selected by the scheme of storage.bucketUrl
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// BlobStore implements DocumentUploader and DocumentReader on top of a blob bucket.
type BlobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for BlobStore, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the bucket named by storage.bucketUrl and closes it on shutdown.
func New(params Params) (*BlobStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.Wrap(domainerrors.ErrConfig, "storage.bucketUrl must be provided")
	}
	if cfg.PublicBaseURL == "" {
		return nil, errors.Wrap(domainerrors.ErrConfig, "storage.publicBaseUrl must be provided")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	store := NewBlobStore(bucket, cfg.PublicBaseURL, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing document bucket")

			return store.Close()
		},
	})

	params.Logger.Info("Document storage initialized",
		slog.String("scheme", bucketScheme(cfg.BucketURL)),
		slog.String("public_base_url", cfg.PublicBaseURL),
	)

	return store, nil
}

// NewBlobStore wraps an already opened bucket.
func NewBlobStore(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) *BlobStore {
	return &BlobStore{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Upload writes doc to <folder>/<uuid>.<ext> and returns <publicBaseURL>/<key>.
// The object is not visible until the write completes; a failed copy aborts it.
func (s *BlobStore) Upload(ctx context.Context, folder string, doc *entity.Document) (string, error) {
	if doc == nil || doc.Body == nil {
		return "", errors.New("document has no body")
	}

	key := objectKey(folder, doc.Extension())

	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(writeCtx, key, &blob.WriterOptions{
		ContentType: doc.MediaType(),
		Metadata:    map[string]string{"original_filename": doc.Filename},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	written, err := io.Copy(w, doc.Body)
	if err != nil {
		cancel()
		_ = w.Close()

		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to commit %s", key)
	}

	documentURL, err := url.JoinPath(s.publicBaseURL, key)
	if err != nil {
		return "", errors.Wrap(err, "failed to build document URL")
	}

	s.logger.DebugContext(ctx, "Document stored", slog.String("key", key), slog.Int64("bytes", written))

	return documentURL, nil
}

// Open streams the object stored under key. The content type is derived from
// the key's extension, not from what the bucket recorded.
func (s *BlobStore) Open(ctx context.Context, key string) (*service.StoredDocument, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "empty document key")
	}

	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.Wrapf(domainerrors.ErrNotFound, "document %s", key)
		}

		return nil, errors.Wrapf(err, "failed to open %s", key)
	}

	return &service.StoredDocument{
		Body:        r,
		ContentType: entity.MediaTypeForExtension(path.Ext(key)),
		Size:        r.Size(),
	}, nil
}

// Close releases the bucket.
func (s *BlobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func objectKey(folder, ext string) string {
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}

	return folder + "/" + name
}

func bucketScheme(bucketURL string) string {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return ""
	}

	return u.Scheme
}

// Module provides the document storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		New,
		func(s *BlobStore) service.DocumentUploader { return s },
		func(s *BlobStore) service.DocumentReader { return s },
	),
)
