package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandingTemplate is a named, reusable set of frame and watermark asset
// references. The portrait fields are optional orientation-specific overrides;
// the landscape fields act as the orientation-agnostic fallback. Many events
// may share one template.
type BrandingTemplate struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	FrameURL             *string `json:"frame_url,omitempty"`
	WatermarkURL         *string `json:"watermark_url,omitempty"`
	FramePortraitURL     *string `json:"frame_portrait_url,omitempty"`
	WatermarkPortraitURL *string `json:"watermark_portrait_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BrandingTemplate) TableName() string {
	return "branding_templates"
}

func (t *BrandingTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
