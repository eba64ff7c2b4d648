package services

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"os"
	"time"

	"goboard/config"
	"goboard/internal/domain/attachment"
	"goboard/internal/repository"
	"goboard/internal/storage"
	board_errors "goboard/pkg/errors"
	"goboard/pkg/logger"

	"github.com/google/uuid"
)

// Part is one submitted file of a multipart form: a declared size, header
// metadata and a stream that must be closed on every path.
type Part interface {
	Filename() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

type multipartPart struct {
	fh *multipart.FileHeader
}

func (p multipartPart) Filename() string    { return p.fh.Filename }
func (p multipartPart) Size() int64         { return p.fh.Size }
func (p multipartPart) ContentType() string { return p.fh.Header.Get("Content-Type") }
func (p multipartPart) Open() (io.ReadCloser, error) {
	return p.fh.Open()
}

// PartsFromHeaders wraps gin's parsed multipart file headers.
func PartsFromHeaders(fhs []*multipart.FileHeader) []Part {
	parts := make([]Part, 0, len(fhs))
	for _, fh := range fhs {
		parts = append(parts, multipartPart{fh: fh})
	}
	return parts
}

// Failure reports why one file of a batch was not saved.
type Failure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestResult summarizes one upload batch. The post submission itself
// never fails because of entries in Failures.
type IngestResult struct {
	Saved    int         `json:"saved"`
	Failures []Failure   `json:"failures,omitempty"`
	Items    []uuid.UUID `json:"-"`
}

type UploadService struct {
	repo     repository.AttachmentRepository
	policy   *storage.Policy
	resolver *storage.Resolver
	bufSize  int
	log      *logger.Logger
}

func NewUploadService(repo repository.AttachmentRepository, policy *storage.Policy, resolver *storage.Resolver, cfg config.UploadConfig, log *logger.Logger) *UploadService {
	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 8192
	}
	return &UploadService{
		repo:     repo,
		policy:   policy,
		resolver: resolver,
		bufSize:  bufSize,
		log:      log,
	}
}

// Ingest validates and stores every part for the given post. One bad file
// records a failure and the loop continues; an empty file input is skipped
// silently because browsers submit one for an untouched form field.
func (s *UploadService) Ingest(ctx context.Context, boardID uuid.UUID, parts []Part) IngestResult {
	var result IngestResult

	for _, part := range parts {
		name := part.Filename()
		if name == "" || part.Size() == 0 {
			continue
		}

		att, err := s.ingestOne(ctx, boardID, part)
		if err != nil {
			if !board_errors.IsValidation(err) {
				s.log.ErrorfCtx(ctx, "upload %q for board %s: %s", name, boardID, err)
			}
			result.Failures = append(result.Failures, Failure{Filename: name, Reason: err.Error()})
			continue
		}

		result.Saved++
		result.Items = append(result.Items, att.ID)
	}

	return result
}

func (s *UploadService) ingestOne(ctx context.Context, boardID uuid.UUID, part Part) (attachment.Attachment, error) {
	name := part.Filename()

	// All three policy checks run before any byte touches disk.
	if err := s.policy.Validate(name, part.Size(), part.ContentType()); err != nil {
		return attachment.Attachment{}, err
	}

	category, err := s.policy.CategoryOf(name)
	if err != nil {
		return attachment.Attachment{}, err
	}

	storedName, absPath, err := s.resolver.Resolve(name, category)
	if err != nil {
		return attachment.Attachment{}, board_errors.ErrIOFailure
	}

	written, err := s.writeFile(part, absPath)
	if err != nil {
		return attachment.Attachment{}, board_errors.ErrIOFailure
	}

	att := attachment.Attachment{
		ID:           uuid.New(),
		BoardID:      boardID,
		OriginalName: name,
		StoredName:   storedName,
		StoragePath:  absPath,
		SizeBytes:    written,
		ContentType:  part.ContentType(),
		Category:     category,
		UploadedAt:   time.Now(),
	}
	if category == attachment.CategoryImage {
		att.WebURL = sql.NullString{String: s.resolver.WebURL(storedName), Valid: true}
	}

	if err := s.repo.Create(ctx, &att); err != nil {
		// No row means the file on disk is an orphan; remove it now.
		if rmErr := os.Remove(absPath); rmErr != nil {
			s.log.ErrorfCtx(ctx, "orphan cleanup %s: %s", absPath, rmErr)
		}
		return attachment.Attachment{}, err
	}

	return att, nil
}

// writeFile streams the part to absPath through a bounded buffer. The
// destination is opened exclusively; a partial file left by a failed copy
// is removed before returning.
func (s *UploadService) writeFile(part Part, absPath string) (int64, error) {
	src, err := part.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, s.bufSize)
	written, err := io.CopyBuffer(dst, src, buf)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return 0, err
	}
	return written, nil
}
