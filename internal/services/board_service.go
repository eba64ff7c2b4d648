package services

import (
	"context"
	"strings"
	"time"

	"goboard/internal/domain/attachment"
	"goboard/internal/domain/board"
	"goboard/internal/repository"
	board_errors "goboard/pkg/errors"
	"goboard/pkg/logger"

	"github.com/google/uuid"
)

type BoardService struct {
	boardRepo   repository.BoardRepository
	userRepo    repository.UserRepository
	attachments *AttachmentService
	log         *logger.Logger
}

func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository, attachments *AttachmentService, log *logger.Logger) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		userRepo:    userRepo,
		attachments: attachments,
		log:         log,
	}
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func (s *BoardService) Create(ctx context.Context, authorID uuid.UUID, title, content string) (board.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" || authorID == uuid.Nil {
		return board.Board{}, board_errors.ErrInvalidInput
	}

	b := board.Board{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.boardRepo.Create(ctx, &b); err != nil {
		return board.Board{}, err
	}
	return b, nil
}

// Get returns the post with its author name and attachment list.
func (s *BoardService) Get(ctx context.Context, id uuid.UUID) (board.Board, []attachment.Attachment, error) {
	b, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return board.Board{}, nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, b.AuthorID); err == nil {
		b.AuthorName = author.DisplayName
		if b.AuthorName == "" {
			b.AuthorName = author.Username
		}
	}

	files, err := s.attachments.ListByBoard(ctx, id)
	if err != nil {
		return board.Board{}, nil, err
	}
	return b, files, nil
}

func (s *BoardService) Update(ctx context.Context, id, userID uuid.UUID, title, content string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return board_errors.ErrInvalidInput
	}

	b, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.AuthorID != userID {
		return board_errors.ErrForbidden
	}

	b.Title = title
	b.Content = content
	return s.boardRepo.Update(ctx, b)
}

// Delete removes the post together with its attachments. Attachment file
// removal is best effort; failures are logged and the rows go anyway so a
// deleted post never resurfaces its files.
func (s *BoardService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	b, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.AuthorID != userID {
		return board_errors.ErrForbidden
	}

	if err := s.attachments.RemoveForBoard(ctx, id); err != nil {
		s.log.ErrorfCtx(ctx, "board %s: attachment cleanup: %s", id, err)
	}

	return s.boardRepo.Delete(ctx, id)
}

func (s *BoardService) List(ctx context.Context, query string, page, limit int) ([]board.Board, int64, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.boardRepo.List(ctx, strings.TrimSpace(query), page, limit)
}
