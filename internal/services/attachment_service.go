package services

import (
	"context"
	"os"

	"goboard/internal/domain/attachment"
	"goboard/internal/repository"
	"goboard/internal/storage"
	board_errors "goboard/pkg/errors"
	"goboard/pkg/logger"

	"github.com/google/uuid"
)

// AttachmentService owns attachment lookups and coordinated deletion. A
// delete always removes the physical file before the metadata row: a
// leftover file is wasted space a sweep can find, a leftover row is a
// download link that lies.
type AttachmentService struct {
	repo      repository.AttachmentRepository
	boardRepo repository.BoardRepository
	resolver  *storage.Resolver
	log       *logger.Logger
}

func NewAttachmentService(repo repository.AttachmentRepository, boardRepo repository.BoardRepository, resolver *storage.Resolver, log *logger.Logger) *AttachmentService {
	return &AttachmentService{
		repo:      repo,
		boardRepo: boardRepo,
		resolver:  resolver,
		log:       log,
	}
}

func (s *AttachmentService) GetByID(ctx context.Context, id uuid.UUID) (attachment.Attachment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AttachmentService) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]attachment.Attachment, error) {
	return s.repo.ListByBoard(ctx, boardID)
}

// Delete removes one attachment on behalf of userID. Only the author of
// the owning post may delete its files.
func (s *AttachmentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.boardRepo.GetByID(ctx, att.BoardID)
	if err != nil {
		return err
	}
	if owner.AuthorID != userID {
		return board_errors.ErrForbidden
	}

	return s.remove(ctx, att)
}

// RemoveForBoard deletes every attachment of a post. Authorization is the
// caller's job; this runs as part of post deletion after the author check.
func (s *AttachmentService) RemoveForBoard(ctx context.Context, boardID uuid.UUID) error {
	items, err := s.repo.ListByBoard(ctx, boardID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, att := range items {
		if err := s.remove(ctx, att); err != nil {
			s.log.ErrorfCtx(ctx, "attachment %s: %s", att.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *AttachmentService) remove(ctx context.Context, att attachment.Attachment) error {
	abs, err := s.resolver.Contain(att.StoragePath)
	if err != nil {
		s.log.ErrorfCtx(ctx, "attachment %s: stored path %q escapes upload root", att.ID, att.StoragePath)
		return board_errors.ErrSecurityViolation
	}

	// File first. An already-absent file is fine; any other failure keeps
	// the row so the attachment stays visible and retryable.
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return board_errors.ErrIOFailure
	}

	if err := s.repo.Delete(ctx, att.ID); err != nil {
		// The file is gone but the row survived: operators reconcile
		// this, the caller must not treat it as success.
		s.log.ErrorfCtx(ctx, "attachment %s: row delete after file removal: %s", att.ID, err)
		return board_errors.ErrPartialFailure
	}
	return nil
}
