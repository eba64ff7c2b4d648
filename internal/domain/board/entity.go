package board

import (
	"time"

	"github.com/google/uuid"
)

// Board represents the boards table (one row per post).
type Board struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName string    `gorm:"-" json:"author_name,omitempty"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Board) TableName() string {
	return "boards"
}
