package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventpix/backend/models"
	"github.com/eventpix/backend/repository"
	"github.com/eventpix/backend/storage"
)

// PhotoService covers the non-pipeline photo operations.
type PhotoService struct {
	photos   repository.PhotoRepositoryInterface
	store    storage.Store
	archiver Archiver
}

func NewPhotoService(photos repository.PhotoRepositoryInterface, store storage.Store, archiver Archiver) *PhotoService {
	return &PhotoService{photos: photos, store: store, archiver: archiver}
}

func (s *PhotoService) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	photo, err := s.photos.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPhotoNotFound, id)
		}
		return nil, err
	}
	return photo, nil
}

// DeletePhoto removes the record, the three stored variants and, if present,
// the archived copy. Variant and archive removal are best-effort; the record
// deletion is what makes the photo gone.
func (s *PhotoService) DeletePhoto(ctx context.Context, id string) error {
	photo, err := s.GetPhoto(ctx, id)
	if err != nil {
		return err
	}

	for _, key := range []string{photo.OriginalKey, photo.WatermarkedKey, photo.ThumbnailKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			zap.L().Warn("failed to delete stored variant",
				zap.String("key", key), zap.Error(err))
		}
	}

	if photo.ArchiveRef != nil {
		go s.archiver.Trash(*photo.ArchiveRef)
	}

	return s.photos.Delete(id)
}
