package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event represents one photography engagement. Its slug doubles as the intake
// directory name watched for incoming files and as the archival folder name.
type Event struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	ShortHash *string    `gorm:"uniqueIndex" json:"short_hash,omitempty"` // public gallery link token
	Date      *time.Time `json:"date,omitempty"`

	TemplateID *string           `json:"template_id,omitempty"`
	Template   *BrandingTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`

	ThemeColor string  `json:"theme_color"`
	LogoURL    *string `json:"logo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
