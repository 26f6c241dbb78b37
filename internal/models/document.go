package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a registry row for one stored upload. Parsed results are
// never persisted here.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Filename         string    `gorm:"type:text;index" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileURL          string    `gorm:"type:text" json:"file_url"`
	ContentType      string    `gorm:"type:text" json:"content_type"`
	Size             int64     `json:"size"`
	StorageBackend   string    `gorm:"type:text" json:"storage_backend"`
	CreatedAt        time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
