package database

import (
	"path/filepath"
	"testing"

	"github.com/eventpix/backend/models"
)

func TestCollectStorageStats(t *testing.T) {
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	eventA := &models.Event{Name: "Alpha", Slug: "alpha"}
	eventB := &models.Event{Name: "Beta", Slug: "beta"}
	for _, e := range []*models.Event{eventA, eventB} {
		if err := db.Create(e).Error; err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	photos := []*models.Photo{
		{EventID: eventA.ID, OriginalKey: "originals/1.jpg", WatermarkedKey: "previews/1.jpg", ThumbnailKey: "thumbnails/1.jpg", Width: 1, Height: 1, FileSize: 1000, MimeType: "image/jpeg"},
		{EventID: eventA.ID, OriginalKey: "originals/2.jpg", WatermarkedKey: "previews/2.jpg", ThumbnailKey: "thumbnails/2.jpg", Width: 1, Height: 1, FileSize: 2500, MimeType: "image/jpeg"},
		{EventID: eventB.ID, OriginalKey: "originals/3.jpg", WatermarkedKey: "previews/3.jpg", ThumbnailKey: "thumbnails/3.jpg", Width: 1, Height: 1, FileSize: 400, MimeType: "image/jpeg"},
	}
	for _, p := range photos {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create photo: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}

	stats, err := CollectStorageStats(sqlDB)
	if err != nil {
		t.Fatalf("CollectStorageStats: %v", err)
	}
	if stats.TotalPhotos != 3 {
		t.Fatalf("total photos %d, want 3", stats.TotalPhotos)
	}
	if stats.TotalBytes != 3900 {
		t.Fatalf("total bytes %d, want 3900", stats.TotalBytes)
	}
	if len(stats.Events) != 2 {
		t.Fatalf("got %d event rows, want 2", len(stats.Events))
	}

	// rows come back ordered by event name
	if stats.Events[0].EventName != "Alpha" || stats.Events[0].Photos != 2 || stats.Events[0].Bytes != 3500 {
		t.Fatalf("alpha row %+v", stats.Events[0])
	}
	if stats.Events[1].EventName != "Beta" || stats.Events[1].Photos != 1 || stats.Events[1].Bytes != 400 {
		t.Fatalf("beta row %+v", stats.Events[1])
	}
}

func TestCollectStorageStatsEmpty(t *testing.T) {
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}

	stats, err := CollectStorageStats(sqlDB)
	if err != nil {
		t.Fatalf("CollectStorageStats: %v", err)
	}
	if stats.TotalPhotos != 0 || stats.TotalBytes != 0 {
		t.Fatalf("empty database should report zeroes, got %+v", stats)
	}
}
