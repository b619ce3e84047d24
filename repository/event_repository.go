package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eventpix/backend/models"
)

// EventRepository handles database operations for Event entities
type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *models.Event) error {
	if err := r.DB.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event together with its branding template, if any
func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	var event models.Event
	err := r.DB.Preload("Template").Where("id = ?", id).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return &event, nil
}

// GetBySlug retrieves an event by its intake directory name
func (r *EventRepository) GetBySlug(slug string) (*models.Event, error) {
	var event models.Event
	err := r.DB.Preload("Template").Where("slug = ?", slug).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event by slug %s: %w", slug, err)
	}
	return &event, nil
}

// ListSlugs returns every event slug, used to pre-register intake directories
func (r *EventRepository) ListSlugs() ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Event{}).Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list event slugs: %w", err)
	}
	return slugs, nil
}
