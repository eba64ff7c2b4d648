package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "uploads", cfg.Upload.RootPath)
	assert.Equal(t, "/upload/images", cfg.Upload.WebImagesPath)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxImageSize)
	assert.Equal(t, 8192, cfg.Upload.BufferSize)
	assert.Contains(t, cfg.Upload.AllowedImages, ".jpg")
	assert.Contains(t, cfg.Upload.AllowedFiles, ".pdf")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("UPLOAD_ROOT_PATH", "/srv/uploads")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "1024")
	t.Setenv("UPLOAD_BUFFER_SIZE", "4096")
	t.Setenv("UPLOAD_ALLOWED_FILES", " .TXT, .Pdf ,, .zip ")

	cfg := LoadConfig()

	assert.Equal(t, "/srv/uploads", cfg.Upload.RootPath)
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 4096, cfg.Upload.BufferSize)
	// Entries are trimmed, lower-cased and empties dropped.
	assert.Equal(t, []string{".txt", ".pdf", ".zip"}, cfg.Upload.AllowedFiles)
}

func TestLoadConfigIgnoresBadNumbers(t *testing.T) {
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "not-a-number")
	t.Setenv("JWT_EXPIRY_MIN", "also-bad")

	cfg := LoadConfig()

	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 60, cfg.JWTExpiryMin)
}
