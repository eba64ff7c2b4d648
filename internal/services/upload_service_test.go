package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	board_errors "goboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploadService(t *testing.T) (*UploadService, *memAttachmentRepo, string) {
	t.Helper()
	cfg := testUploadConfig(t)
	policy, resolver := testStorage(t, cfg)
	repo := newMemAttachmentRepo()
	svc := NewUploadService(repo, policy, resolver, cfg, testLogger())
	return svc, repo, cfg.RootPath
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestIngestSavesValidParts(t *testing.T) {
	svc, repo, root := newTestUploadService(t)
	boardID := uuid.New()

	parts := []Part{
		memPart{name: "notes.txt", contentType: "text/plain", data: []byte("hello world")},
		memPart{name: "photo.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8, 0xff}},
	}

	result := svc.Ingest(context.Background(), boardID, parts)

	assert.Equal(t, 2, result.Saved)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Items, 2)

	items, err := repo.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	txt := items[0]
	assert.Equal(t, "notes.txt", txt.OriginalName)
	assert.Equal(t, int64(len("hello world")), txt.SizeBytes)
	assert.False(t, txt.WebURL.Valid)

	data, err := os.ReadFile(txt.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)
	assert.Equal(t, filepath.Join(root, "files"), filepath.Dir(txt.StoragePath))

	img := items[1]
	require.True(t, img.WebURL.Valid)
	assert.Equal(t, "/upload/images/"+img.StoredName, img.WebURL.String)
	assert.Equal(t, filepath.Join(root, "images"), filepath.Dir(img.StoragePath))
}

func TestIngestSkipsEmptyFormField(t *testing.T) {
	svc, repo, _ := newTestUploadService(t)

	result := svc.Ingest(context.Background(), uuid.New(), []Part{
		memPart{name: "", contentType: "application/octet-stream"},
		memPart{name: "empty.txt", contentType: "text/plain", data: nil},
	})

	// An untouched file input is not a failure, it is nothing at all.
	assert.Equal(t, 0, result.Saved)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 0, repo.len())
}

func TestIngestIsolatesPerFileFailures(t *testing.T) {
	svc, repo, _ := newTestUploadService(t)
	boardID := uuid.New()

	result := svc.Ingest(context.Background(), boardID, []Part{
		memPart{name: "good1.txt", contentType: "text/plain", data: []byte("a")},
		memPart{name: "bad.exe", contentType: "application/octet-stream", data: []byte("b")},
		memPart{name: "good2.txt", contentType: "text/plain", data: []byte("c")},
	})

	assert.Equal(t, 2, result.Saved)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "bad.exe", result.Failures[0].Filename)
	assert.Equal(t, board_errors.ErrUnsupportedExtension.Error(), result.Failures[0].Reason)
	assert.Equal(t, 2, repo.len())
}

func TestIngestWritesNothingOnValidationFailure(t *testing.T) {
	svc, repo, root := newTestUploadService(t)

	result := svc.Ingest(context.Background(), uuid.New(), []Part{
		memPart{name: "huge.txt", contentType: "text/plain", data: []byte("x"), sizeHint: 2 << 20},
		memPart{name: "fake.jpg", contentType: "text/plain", data: []byte("y")},
	})

	assert.Equal(t, 0, result.Saved)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, 0, repo.len())
	assert.Empty(t, dirEntries(t, filepath.Join(root, "files")))
	assert.Empty(t, dirEntries(t, filepath.Join(root, "images")))
}

func TestIngestRemovesOrphanWhenInsertFails(t *testing.T) {
	svc, repo, root := newTestUploadService(t)
	repo.createErr = board_errors.ErrConflict

	result := svc.Ingest(context.Background(), uuid.New(), []Part{
		memPart{name: "notes.txt", contentType: "text/plain", data: []byte("hello")},
	})

	assert.Equal(t, 0, result.Saved)
	require.Len(t, result.Failures, 1)
	// The file written before the failed insert must not linger.
	assert.Empty(t, dirEntries(t, filepath.Join(root, "files")))
}

func TestIngestReportsIOFailureOnUnreadablePart(t *testing.T) {
	svc, repo, _ := newTestUploadService(t)

	result := svc.Ingest(context.Background(), uuid.New(), []Part{
		memPart{name: "notes.txt", contentType: "text/plain", data: []byte("x"), openErr: os.ErrClosed},
	})

	assert.Equal(t, 0, result.Saved)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, board_errors.ErrIOFailure.Error(), result.Failures[0].Reason)
	assert.Equal(t, 0, repo.len())
}

func TestIngestStreamsLargerThanBuffer(t *testing.T) {
	svc, repo, _ := newTestUploadService(t)
	boardID := uuid.New()

	// Ten times the configured buffer size.
	payload := make([]byte, 640)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	result := svc.Ingest(context.Background(), boardID, []Part{
		memPart{name: "blob.zip", contentType: "application/zip", data: payload},
	})

	require.Equal(t, 1, result.Saved)
	items, err := repo.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	data, err := os.ReadFile(items[0].StoragePath)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, int64(len(payload)), items[0].SizeBytes)
}
