package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eventpix/backend/models"
)

// SettingsRepository manages the singleton GlobalSettings row
type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// GetOrCreate returns the deployment settings, creating the row with default
// qualities on first use. Quality values outside 0-100 are normalized so the
// compositor never sees a nonsense encoder setting.
func (r *SettingsRepository) GetOrCreate() (*models.GlobalSettings, error) {
	var settings models.GlobalSettings
	err := r.DB.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.GlobalSettings{
			JpegQuality:  models.DefaultJpegQuality,
			ThumbQuality: models.DefaultThumbQuality,
		}
		if err := r.DB.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.JpegQuality <= 0 || settings.JpegQuality > 100 {
		settings.JpegQuality = models.DefaultJpegQuality
	}
	if settings.ThumbQuality <= 0 || settings.ThumbQuality > 100 {
		settings.ThumbQuality = models.DefaultThumbQuality
	}
	return &settings, nil
}

func (r *SettingsRepository) Update(settings *models.GlobalSettings) error {
	if err := r.DB.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
