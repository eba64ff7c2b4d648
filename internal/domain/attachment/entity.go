package attachment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Category classifies an attachment and selects its storage subdirectory
// and validation ceilings.
type Category string

const (
	CategoryImage Category = "image"
	CategoryFile  Category = "file"
)

// Attachment represents the attachments table. Rows are immutable once
// written; a re-upload creates a new row.
//
// OriginalName is display-only and never used to build paths. StoredName
// is the server-generated name on disk; StoragePath is the absolute
// location under the upload root derived from it.
type Attachment struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"board_id"`
	OriginalName string         `gorm:"not null" json:"original_name"`
	StoredName   string         `gorm:"uniqueIndex;not null" json:"-"`
	StoragePath  string         `gorm:"not null" json:"-"`
	SizeBytes    int64          `gorm:"not null" json:"size_bytes"`
	ContentType  string         `gorm:"not null" json:"content_type"`
	Category     Category       `gorm:"type:varchar(8);not null" json:"category"`
	WebURL       sql.NullString `json:"web_url,omitempty"`
	UploadedAt   time.Time      `gorm:"default:now()" json:"uploaded_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a Attachment) IsImage() bool {
	return a.Category == CategoryImage
}
