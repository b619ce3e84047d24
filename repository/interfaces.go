package repository

import "github.com/eventpix/backend/models"

// EventRepositoryInterface defines the event lookups the pipeline needs
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	GetByID(id string) (*models.Event, error)
	GetBySlug(slug string) (*models.Event, error)
	ListSlugs() ([]string, error)
}

// PhotoRepositoryInterface defines the photo data operations
type PhotoRepositoryInterface interface {
	Create(photo *models.Photo) error
	GetByID(id string) (*models.Photo, error)
	ListIDsByEvent(eventID string) ([]string, error)
	SetArchiveRef(photoID, archiveRef string) error
	Delete(id string) error
}

// SettingsRepositoryInterface exposes the singleton deployment settings
type SettingsRepositoryInterface interface {
	GetOrCreate() (*models.GlobalSettings, error)
	Update(settings *models.GlobalSettings) error
}
