package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventpix/backend/media"
	"github.com/eventpix/backend/models"
	"github.com/eventpix/backend/repository"
	"github.com/eventpix/backend/storage"
)

const generatedNameLength = 10

// IngestService is the single authoritative "create a photo" operation. Every
// intake path (watcher, FTP drop, synchronous upload) terminates here.
type IngestService struct {
	events   repository.EventRepositoryInterface
	photos   repository.PhotoRepositoryInterface
	settings repository.SettingsRepositoryInterface
	store    storage.Store
	assets   *media.AssetLoader
	archiver Archiver
}

func NewIngestService(
	events repository.EventRepositoryInterface,
	photos repository.PhotoRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
	store storage.Store,
	assets *media.AssetLoader,
	archiver Archiver,
) *IngestService {
	return &IngestService{
		events:   events,
		photos:   photos,
		settings: settings,
		store:    store,
		assets:   assets,
		archiver: archiver,
	}
}

// CreatePhoto runs the full ingestion pipeline for one original: branding
// resolution, compositing, variant storage, metadata persistence and the
// detached archival upload. Exactly one Photo record appears on success, none
// on failure.
func (s *IngestService) CreatePhoto(ctx context.Context, data []byte, filename, eventID string, momentID *string) (*models.Photo, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return nil, err
	}

	width, height, err := media.Dimensions(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	settings, err := s.settings.GetOrCreate()
	if err != nil {
		zap.L().Warn("failed to load global settings, using defaults", zap.Error(err))
		settings = &models.GlobalSettings{
			JpegQuality:  models.DefaultJpegQuality,
			ThumbQuality: models.DefaultThumbQuality,
		}
	}

	branding := media.ResolveBranding(event.Template, settings, media.IsPortrait(width, height))
	frame := s.assets.Load(branding.FrameRef)
	watermark := s.assets.Load(branding.WatermarkRef)

	result, err := media.Composite(data, frame, watermark, settings.JpegQuality, settings.ThumbQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	name, err := gonanoid.New(generatedNameLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate photo name: %w", err)
	}
	name += filepath.Ext(filename)

	mimeType := media.MimeTypeForFilename(filename)

	// all three variants share the generated basename so they round-trip as
	// one unit between backends
	if err := s.store.Put(ctx, storage.OriginalKey(name), data, mimeType); err != nil {
		return nil, fmt.Errorf("%w: original: %v", ErrStorageWrite, err)
	}
	if err := s.store.Put(ctx, storage.PreviewKey(name), result.Preview, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("%w: preview: %v", ErrStorageWrite, err)
	}
	if err := s.store.Put(ctx, storage.ThumbnailKey(name), result.Thumbnail, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("%w: thumbnail: %v", ErrStorageWrite, err)
	}

	photo := &models.Photo{
		EventID:        event.ID,
		MomentID:       momentID,
		OriginalKey:    storage.OriginalKey(name),
		WatermarkedKey: storage.PreviewKey(name),
		ThumbnailKey:   storage.ThumbnailKey(name),
		Width:          result.Width,
		Height:         result.Height,
		FileSize:       int64(len(data)),
		MimeType:       mimeType,
		TakenAt:        media.TakenAtUnix(data),
	}
	if err := s.photos.Create(photo); err != nil {
		// the three written variants are orphaned here; accepted leak, a
		// reconciliation sweep can reclaim them
		return nil, err
	}

	zap.L().Info("photo ingested",
		zap.String("photo_id", photo.ID),
		zap.String("event", event.Slug),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height))

	go s.archiver.Archive(photo.ID, event.Slug, filename, data)

	return photo, nil
}
