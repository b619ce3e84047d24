package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventpix/backend/media"
	"github.com/eventpix/backend/models"
	"github.com/eventpix/backend/repository"
	"github.com/eventpix/backend/storage"
)

// ReprocessService re-runs branding against already-stored originals when
// templates or global settings change after ingestion.
type ReprocessService struct {
	events   repository.EventRepositoryInterface
	photos   repository.PhotoRepositoryInterface
	settings repository.SettingsRepositoryInterface
	store    storage.Store
	assets   *media.AssetLoader
}

func NewReprocessService(
	events repository.EventRepositoryInterface,
	photos repository.PhotoRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
	store storage.Store,
	assets *media.AssetLoader,
) *ReprocessService {
	return &ReprocessService{
		events:   events,
		photos:   photos,
		settings: settings,
		store:    store,
		assets:   assets,
	}
}

// ReprocessSummary tallies one bulk run. PhotoIDs lists every target up front
// so a caller can instead drive single-photo reprocessing itself under its own
// timeout budget.
type ReprocessSummary struct {
	Total    int      `json:"total"`
	Success  int      `json:"success"`
	Failed   int      `json:"failed"`
	PhotoIDs []string `json:"photo_ids"`
}

// ReprocessPhoto regenerates the preview and thumbnail of one photo with
// current branding settings, overwriting the existing variant keys in place.
// The stored original and the rest of the record are untouched.
func (s *ReprocessService) ReprocessPhoto(ctx context.Context, photoID string) error {
	photo, err := s.photos.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrPhotoNotFound, photoID)
		}
		return err
	}

	event, err := s.events.GetByID(photo.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrEventNotFound, photo.EventID)
		}
		return err
	}

	original, err := s.store.Get(ctx, photo.OriginalKey)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, photo.OriginalKey, err)
	}

	settings, err := s.settings.GetOrCreate()
	if err != nil {
		zap.L().Warn("failed to load global settings, using defaults", zap.Error(err))
		settings = &models.GlobalSettings{
			JpegQuality:  models.DefaultJpegQuality,
			ThumbQuality: models.DefaultThumbQuality,
		}
	}

	width, height, err := media.Dimensions(original)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompositeFailed, err)
	}

	branding := media.ResolveBranding(event.Template, settings, media.IsPortrait(width, height))
	frame := s.assets.Load(branding.FrameRef)
	watermark := s.assets.Load(branding.WatermarkRef)

	result, err := media.Composite(original, frame, watermark, settings.JpegQuality, settings.ThumbQuality)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompositeFailed, err)
	}

	if err := s.store.Put(ctx, photo.WatermarkedKey, result.Preview, "image/jpeg"); err != nil {
		return fmt.Errorf("%w: preview: %v", ErrStorageWrite, err)
	}
	if err := s.store.Put(ctx, photo.ThumbnailKey, result.Thumbnail, "image/jpeg"); err != nil {
		return fmt.Errorf("%w: thumbnail: %v", ErrStorageWrite, err)
	}

	zap.L().Info("photo reprocessed", zap.String("photo_id", photoID))
	return nil
}

// ListReprocessTargets enumerates the photo ids a bulk run would cover.
func (s *ReprocessService) ListReprocessTargets(ctx context.Context, eventID string) ([]string, error) {
	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return nil, err
	}
	return s.photos.ListIDsByEvent(eventID)
}

// ReprocessEvent re-brands every photo of an event sequentially. One item's
// failure is recorded in the tally and does not abort the remaining items;
// sequential execution is a deliberate throughput cap on concurrent decodes.
func (s *ReprocessService) ReprocessEvent(ctx context.Context, eventID string) (*ReprocessSummary, error) {
	ids, err := s.ListReprocessTargets(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &ReprocessSummary{Total: len(ids), PhotoIDs: ids}
	for _, id := range ids {
		if err := s.ReprocessPhoto(ctx, id); err != nil {
			zap.L().Error("failed to reprocess photo",
				zap.String("photo_id", id), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Success++
	}
	return summary, nil
}
