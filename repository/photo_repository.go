package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eventpix/backend/models"
)

// PhotoRepository handles database operations for Photo entities
type PhotoRepository struct {
	DB *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	if err := r.DB.Create(photo).Error; err != nil {
		return fmt.Errorf("failed to create photo record: %w", err)
	}
	return nil
}

func (r *PhotoRepository) GetByID(id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.Where("id = ?", id).First(&photo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo %s: %w", id, err)
	}
	return &photo, nil
}

// ListIDsByEvent enumerates photo ids for one event in creation order
func (r *PhotoRepository) ListIDsByEvent(eventID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&models.Photo{}).
		Where("event_id = ?", eventID).
		Order("created_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photo ids for event %s: %w", eventID, err)
	}
	return ids, nil
}

// SetArchiveRef records the archival file id once the mirror upload succeeds
func (r *PhotoRepository) SetArchiveRef(photoID, archiveRef string) error {
	result := r.DB.Model(&models.Photo{}).
		Where("id = ?", photoID).
		Update("archive_ref", archiveRef)
	if result.Error != nil {
		return fmt.Errorf("failed to set archive ref for photo %s: %w", photoID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("photo %s not found while setting archive ref", photoID)
	}
	return nil
}

func (r *PhotoRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Photo{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete photo %s: %w", id, result.Error)
	}
	return nil
}
