package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is one ingested photograph and the locations of its three durable
// variants. A record only ever exists with all three keys populated; if any
// variant fails to materialize during ingestion no record is written.
//
// ArchiveRef starts null and is set at most once, asynchronously, after the
// archival mirror accepts the original. Downloads and Shares are mutated by
// the public gallery, never by the pipeline.
type Photo struct {
	ID      string  `gorm:"primaryKey" json:"id"`
	EventID string  `gorm:"index;not null" json:"event_id"`
	MomentID *string `gorm:"index" json:"moment_id,omitempty"`

	OriginalKey    string `gorm:"not null" json:"original_key"`
	WatermarkedKey string `gorm:"not null" json:"watermarked_key"`
	ThumbnailKey   string `gorm:"not null" json:"thumbnail_key"`

	Width    int    `gorm:"not null" json:"width"`
	Height   int    `gorm:"not null" json:"height"`
	FileSize int64  `gorm:"not null" json:"file_size"` // bytes of the original
	MimeType string `gorm:"not null" json:"mime_type"`

	TakenAt *int64 `gorm:"index" json:"taken_at,omitempty"` // EXIF, unix seconds

	ArchiveRef *string `json:"archive_ref,omitempty"`

	Downloads int `gorm:"default:0" json:"downloads"`
	Shares    int `gorm:"default:0" json:"shares"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsPortrait reports whether the stored dimensions describe a portrait image.
func (p *Photo) IsPortrait() bool {
	return p.Height > p.Width
}
