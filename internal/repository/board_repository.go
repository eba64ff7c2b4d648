package repository

import (
	"context"
	"errors"
	"time"

	"goboard/internal/domain/board"
	board_errors "goboard/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresBoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &PostgresBoardRepository{db: db}
}

func (r *PostgresBoardRepository) Create(ctx context.Context, b *board.Board) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (board.Board, error) {
	var b board.Board
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return board.Board{}, board_errors.ErrNotFound
		}
		return board.Board{}, err
	}
	return b, nil
}

func (r *PostgresBoardRepository) Update(ctx context.Context, b board.Board) error {
	b.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&board.Board{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":      b.Title,
			"content":    b.Content,
			"updated_at": b.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return board_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&board.Board{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return board_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresBoardRepository) List(ctx context.Context, query string, page, limit int) ([]board.Board, int64, error) {
	var boards []board.Board
	var total int64

	q := r.db.WithContext(ctx).Model(&board.Board{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&boards).Error; err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}
