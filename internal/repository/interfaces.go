package repository

import (
	"context"

	"github.com/google/uuid"

	"goboard/internal/domain/attachment"
	"goboard/internal/domain/board"
	"goboard/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)

	CreateSession(ctx context.Context, s *user.UserSession) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (user.UserSession, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
}

type BoardRepository interface {
	Create(ctx context.Context, b *board.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (board.Board, error)
	Update(ctx context.Context, b board.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, page, limit int) ([]board.Board, int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *attachment.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (attachment.Attachment, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]attachment.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
