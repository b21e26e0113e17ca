package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"campus/config"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T) *BlobStore {
	t.Helper()

	store := NewBlobStore(memblob.OpenBucket(nil), "https://docs.campus.test/files", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestBlobStore_UploadAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	documentURL, err := store.Upload(ctx, "analisis", &entity.Document{
		Filename: "Carnet.PNG",
		Body:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	u, err := url.Parse(documentURL)
	require.NoError(t, err)
	assert.True(t, u.IsAbs())
	assert.Equal(t, "docs.campus.test", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/files/analisis/"))
	assert.True(t, strings.HasSuffix(u.Path, ".png"))

	key := strings.TrimPrefix(u.Path, "/files/")
	doc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer doc.Body.Close()

	body, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", doc.ContentType)
	assert.Equal(t, int64(len("png-bytes")), doc.Size)
}

func TestBlobStore_UploadKeysAreUnique(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Upload(context.Background(), "analisis", &entity.Document{Filename: "a.pdf", Body: strings.NewReader("1")})
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), "analisis", &entity.Document{Filename: "a.pdf", Body: strings.NewReader("2")})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestBlobStore_UploadReadFailure(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "analisis", &entity.Document{Filename: "a.pdf", Body: failingReader{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client went away")
}

func TestBlobStore_UploadWithoutBody(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "analisis", &entity.Document{Filename: "a.pdf"})
	assert.Error(t, err)
}

func TestBlobStore_OpenMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(context.Background(), "analisis/nope.png")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = store.Open(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestObjectKey(t *testing.T) {
	assert.Regexp(t, `^analisis/[0-9a-f-]{36}\.pdf$`, objectKey("/analisis/", "pdf"))
	assert.Regexp(t, `^[0-9a-f-]{36}$`, objectKey("", ""))
}

func TestNew_RequiresConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(Params{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{Storage: &config.StorageConfig{PublicBaseURL: "http://localhost/documents"}},
		Logger: logger,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConfig)

	lc := fxtest.NewLifecycle(t)
	store, err := New(Params{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{Storage: &config.StorageConfig{BucketURL: "mem://", PublicBaseURL: "http://localhost/documents"}},
		Logger: logger,
	})
	require.NoError(t, err)
	assert.NotNil(t, store)
	lc.RequireStart().RequireStop()
}

func TestBlobStore_ContentTypeFollowsExtension(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	documentURL, err := store.Upload(ctx, "analisis", &entity.Document{
		Filename: "carnet.png",
		Body:     strings.NewReader("<script>alert(1)</script>"),
	})
	require.NoError(t, err)

	u, err := url.Parse(documentURL)
	require.NoError(t, err)
	key := strings.TrimPrefix(u.Path, "/files/")

	attrs, err := store.bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)

	doc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer doc.Body.Close()
	assert.Equal(t, "image/png", doc.ContentType)
}

func TestBlobStore_OpenIgnoresRecordedContentType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.bucket.WriteAll(ctx, "analisis/old.pdf", []byte("%PDF"), &blob.WriterOptions{ContentType: "text/html"}))
	require.NoError(t, store.bucket.WriteAll(ctx, "analisis/page.html", []byte("<p>"), &blob.WriterOptions{ContentType: "text/html"}))

	doc, err := store.Open(ctx, "analisis/old.pdf")
	require.NoError(t, err)
	defer doc.Body.Close()
	assert.Equal(t, "application/pdf", doc.ContentType)

	other, err := store.Open(ctx, "analisis/page.html")
	require.NoError(t, err)
	defer other.Body.Close()
	assert.Empty(t, other.ContentType)
}
