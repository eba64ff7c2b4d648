package services

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"goboard/config"
	"goboard/internal/domain/attachment"
	"goboard/internal/repository"
	"goboard/internal/storage"
	board_errors "goboard/pkg/errors"
	"goboard/pkg/logger"

	"github.com/google/uuid"
)

type DownloadService struct {
	repo     repository.AttachmentRepository
	resolver *storage.Resolver
	bufSize  int
	log      *logger.Logger
}

func NewDownloadService(repo repository.AttachmentRepository, resolver *storage.Resolver, cfg config.UploadConfig, log *logger.Logger) *DownloadService {
	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 8192
	}
	return &DownloadService{
		repo:     repo,
		resolver: resolver,
		bufSize:  bufSize,
		log:      log,
	}
}

// Download is an open attachment ready to stream. The caller owns File and
// must close it.
type Download struct {
	Attachment attachment.Attachment
	File       *os.File
}

// Open resolves an attachment id to its physical file. The stored path is
// re-normalized and checked against the upload root on every call; a row
// whose path escapes the root is refused even though the database vouches
// for it.
func (s *DownloadService) Open(ctx context.Context, id uuid.UUID) (Download, error) {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Download{}, err
	}

	abs, err := s.resolver.Contain(att.StoragePath)
	if err != nil {
		s.log.ErrorfCtx(ctx, "attachment %s: stored path %q escapes upload root", id, att.StoragePath)
		return Download{}, board_errors.ErrSecurityViolation
	}

	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// Metadata without a file is an inconsistency worth a log
			// line, but it is not repaired here.
			s.log.ErrorfCtx(ctx, "attachment %s: file missing at %s", id, abs)
			return Download{}, board_errors.ErrNotFound
		}
		return Download{}, board_errors.ErrIOFailure
	}

	return Download{Attachment: att, File: f}, nil
}

// Stream copies the file to w through a bounded buffer; the whole file is
// never held in memory.
func (s *DownloadService) Stream(w io.Writer, d Download) error {
	buf := make([]byte, s.bufSize)
	if _, err := io.CopyBuffer(w, d.File, buf); err != nil {
		return board_errors.ErrIOFailure
	}
	return nil
}

// ContentDisposition builds the attachment header value. The original
// filename is URL-escaped so non-ASCII names survive transport; spaces
// become %20 rather than '+'.
func ContentDisposition(originalName string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(originalName), "+", "%20")
	return `attachment; filename="` + encoded + `"`
}
