package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Moment is a named sub-grouping of photos within an event. The ingestion
// pipeline treats moment ids as opaque foreign data; the model exists so the
// schema can hold the relation.
type Moment struct {
	ID      string `gorm:"primaryKey" json:"id"`
	EventID string `gorm:"index;not null" json:"event_id"`
	Name    string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

func (Moment) TableName() string {
	return "moments"
}

func (m *Moment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
