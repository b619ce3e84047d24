package repository

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/eventpix/backend/models"
)

func createTestEvent(t *testing.T, repo *EventRepository, slug string) *models.Event {
	t.Helper()
	event := &models.Event{Name: slug, Slug: slug}
	if err := repo.Create(event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func createTestPhoto(t *testing.T, repo *PhotoRepository, eventID, name string) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		EventID:        eventID,
		OriginalKey:    "originals/" + name,
		WatermarkedKey: "previews/" + name,
		ThumbnailKey:   "thumbnails/" + name,
		Width:          800,
		Height:         600,
		FileSize:       1234,
		MimeType:       "image/jpeg",
	}
	if err := repo.Create(photo); err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return photo
}

func TestPhotoRepositoryCRUD(t *testing.T) {
	db := testDB(t)
	events := NewEventRepository(db)
	photos := NewPhotoRepository(db)

	event := createTestEvent(t, events, "wedding")
	photo := createTestPhoto(t, photos, event.ID, "a.jpg")

	got, err := photos.GetByID(photo.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.OriginalKey != "originals/a.jpg" {
		t.Fatalf("original key %q", got.OriginalKey)
	}
	if got.ArchiveRef != nil {
		t.Fatal("new photo should have no archive ref")
	}

	if err := photos.Delete(photo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := photos.GetByID(photo.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID after delete: %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestPhotoRepositorySetArchiveRef(t *testing.T) {
	db := testDB(t)
	events := NewEventRepository(db)
	photos := NewPhotoRepository(db)

	event := createTestEvent(t, events, "gala")
	photo := createTestPhoto(t, photos, event.ID, "a.jpg")

	if err := photos.SetArchiveRef(photo.ID, "drive-file-id"); err != nil {
		t.Fatalf("SetArchiveRef: %v", err)
	}
	got, err := photos.GetByID(photo.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ArchiveRef == nil || *got.ArchiveRef != "drive-file-id" {
		t.Fatalf("archive ref %v, want drive-file-id", got.ArchiveRef)
	}

	if err := photos.SetArchiveRef("missing", "x"); err == nil {
		t.Fatal("SetArchiveRef on missing photo should fail")
	}
}

func TestPhotoRepositoryListIDsByEvent(t *testing.T) {
	db := testDB(t)
	events := NewEventRepository(db)
	photos := NewPhotoRepository(db)

	a := createTestEvent(t, events, "a")
	b := createTestEvent(t, events, "b")

	first := createTestPhoto(t, photos, a.ID, "1.jpg")
	second := createTestPhoto(t, photos, a.ID, "2.jpg")
	createTestPhoto(t, photos, b.ID, "3.jpg")

	ids, err := photos.ListIDsByEvent(a.ID)
	if err != nil {
		t.Fatalf("ListIDsByEvent: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}
	if ids[0] != first.ID || ids[1] != second.ID {
		t.Fatalf("ids %v not in creation order (%s, %s)", ids, first.ID, second.ID)
	}
}

func TestEventRepositoryLookups(t *testing.T) {
	db := testDB(t)
	events := NewEventRepository(db)

	tpl := &models.BrandingTemplate{Name: "Gold"}
	if err := db.Create(tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}
	event := &models.Event{Name: "Wedding", Slug: "wedding", TemplateID: &tpl.ID}
	if err := events.Create(event); err != nil {
		t.Fatalf("create event: %v", err)
	}

	byID, err := events.GetByID(event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Template == nil || byID.Template.Name != "Gold" {
		t.Fatalf("template not preloaded: %+v", byID.Template)
	}

	bySlug, err := events.GetBySlug("wedding")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug.ID != event.ID {
		t.Fatalf("slug lookup returned %q, want %q", bySlug.ID, event.ID)
	}

	if _, err := events.GetBySlug("nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetBySlug missing: %v, want gorm.ErrRecordNotFound", err)
	}

	slugs, err := events.ListSlugs()
	if err != nil {
		t.Fatalf("ListSlugs: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "wedding" {
		t.Fatalf("slugs %v, want [wedding]", slugs)
	}
}
