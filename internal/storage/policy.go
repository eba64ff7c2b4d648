package storage

import (
	"path/filepath"
	"strings"

	"goboard/config"
	"goboard/internal/domain/attachment"
	board_errors "goboard/pkg/errors"
)

// Policy validates a file against the configured extension whitelists,
// per-category size ceilings and MIME consistency. It is pure: no byte is
// read or written here.
type Policy struct {
	imageExts    map[string]struct{}
	fileExts     map[string]struct{}
	maxFileSize  int64
	maxImageSize int64
}

func NewPolicy(cfg config.UploadConfig) *Policy {
	p := &Policy{
		imageExts:    make(map[string]struct{}, len(cfg.AllowedImages)),
		fileExts:     make(map[string]struct{}, len(cfg.AllowedFiles)),
		maxFileSize:  cfg.MaxFileSize,
		maxImageSize: cfg.MaxImageSize,
	}
	for _, ext := range cfg.AllowedImages {
		p.imageExts[ext] = struct{}{}
	}
	for _, ext := range cfg.AllowedFiles {
		p.fileExts[ext] = struct{}{}
	}
	return p
}

// CategoryOf returns the category the filename's extension maps to, or an
// ErrUnsupportedExtension if it is on neither whitelist.
func (p *Policy) CategoryOf(filename string) (attachment.Category, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := p.imageExts[ext]; ok {
		return attachment.CategoryImage, nil
	}
	if _, ok := p.fileExts[ext]; ok {
		return attachment.CategoryFile, nil
	}
	return "", board_errors.ErrUnsupportedExtension
}

// Validate runs the extension, size and MIME checks in that order and
// returns the first failure. Nothing may be written to disk before this
// returns nil.
func (p *Policy) Validate(filename string, sizeBytes int64, contentType string) error {
	category, err := p.CategoryOf(filename)
	if err != nil {
		return err
	}

	switch category {
	case attachment.CategoryImage:
		if sizeBytes > p.maxImageSize {
			return board_errors.ErrTooLarge
		}
		if !strings.HasPrefix(contentType, "image/") {
			return board_errors.ErrTypeMismatch
		}
	default:
		if sizeBytes > p.maxFileSize {
			return board_errors.ErrTooLarge
		}
		// An image MIME type behind a generic extension is just as
		// suspicious as the reverse.
		if strings.HasPrefix(contentType, "image/") {
			return board_errors.ErrTypeMismatch
		}
	}

	return nil
}
