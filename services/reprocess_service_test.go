package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/eventpix/backend/media"
	"github.com/eventpix/backend/models"
)

func newReprocessService(f *ingestFixture) *ReprocessService {
	return NewReprocessService(f.events, f.photos, f.settings, f.store, media.NewAssetLoader(f.publicDir))
}

func TestReprocessPhotoAppliesNewBranding(t *testing.T) {
	f := newIngestFixture(t)
	event := f.createEvent(t, "rebrand", nil)
	ctx := context.Background()

	original := jpegBytes(t, 800, 600)
	photo, err := f.svc.CreatePhoto(ctx, original, "a.jpg", event.ID, nil)
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	// branding arrives after ingestion
	wmRef := pngAsset(t, f.publicDir, "late-wm.png", 80, 30)
	settings, err := f.settings.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate settings: %v", err)
	}
	settings.WatermarkURL = &wmRef
	if err := f.settings.Update(settings); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	svc := newReprocessService(f)
	if err := svc.ReprocessPhoto(ctx, photo.ID); err != nil {
		t.Fatalf("ReprocessPhoto: %v", err)
	}

	preview, err := f.store.Get(ctx, photo.WatermarkedKey)
	if err != nil {
		t.Fatalf("Get preview: %v", err)
	}
	if bytes.Equal(preview, original) {
		t.Fatal("preview unchanged after reprocessing with a new watermark")
	}

	// the original is never rewritten
	stored, err := f.store.Get(ctx, photo.OriginalKey)
	if err != nil {
		t.Fatalf("Get original: %v", err)
	}
	if !bytes.Equal(stored, original) {
		t.Fatal("reprocessing must not touch the stored original")
	}
}

func TestReprocessPhotoIdempotent(t *testing.T) {
	f := newIngestFixture(t)
	wmRef := pngAsset(t, f.publicDir, "wm.png", 80, 30)
	event := f.createEvent(t, "stable", &models.BrandingTemplate{Name: "Stable", WatermarkURL: &wmRef})
	ctx := context.Background()

	photo, err := f.svc.CreatePhoto(ctx, jpegBytes(t, 640, 480), "a.jpg", event.ID, nil)
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	svc := newReprocessService(f)
	if err := svc.ReprocessPhoto(ctx, photo.ID); err != nil {
		t.Fatalf("first ReprocessPhoto: %v", err)
	}
	first, err := f.store.Get(ctx, photo.WatermarkedKey)
	if err != nil {
		t.Fatalf("Get preview: %v", err)
	}

	if err := svc.ReprocessPhoto(ctx, photo.ID); err != nil {
		t.Fatalf("second ReprocessPhoto: %v", err)
	}
	second, err := f.store.Get(ctx, photo.WatermarkedKey)
	if err != nil {
		t.Fatalf("Get preview: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("two reprocess runs with unchanged settings produced different previews")
	}
}

func TestReprocessPhotoUnknownID(t *testing.T) {
	f := newIngestFixture(t)
	svc := newReprocessService(f)

	err := svc.ReprocessPhoto(context.Background(), "no-such-photo")
	if !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("got %v, want ErrPhotoNotFound", err)
	}
}

func TestReprocessPhotoMissingOriginal(t *testing.T) {
	f := newIngestFixture(t)
	event := f.createEvent(t, "lost", nil)
	ctx := context.Background()

	photo, err := f.svc.CreatePhoto(ctx, jpegBytes(t, 300, 200), "a.jpg", event.ID, nil)
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}
	if err := f.store.Delete(ctx, photo.OriginalKey); err != nil {
		t.Fatalf("delete original: %v", err)
	}

	err = newReprocessService(f).ReprocessPhoto(ctx, photo.ID)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("got %v, want ErrSourceUnavailable", err)
	}
}

func TestReprocessEventTalliesFailures(t *testing.T) {
	f := newIngestFixture(t)
	event := f.createEvent(t, "bulk", nil)
	ctx := context.Background()

	var photos []*models.Photo
	for _, name := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		p, err := f.svc.CreatePhoto(ctx, jpegBytes(t, 320, 240), name, event.ID, nil)
		if err != nil {
			t.Fatalf("CreatePhoto %s: %v", name, err)
		}
		photos = append(photos, p)
	}

	// lose the middle photo's original
	if err := f.store.Delete(ctx, photos[1].OriginalKey); err != nil {
		t.Fatalf("delete original: %v", err)
	}

	summary, err := newReprocessService(f).ReprocessEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ReprocessEvent: %v", err)
	}
	if summary.Total != 3 || summary.Success != 2 || summary.Failed != 1 {
		t.Fatalf("summary %+v, want total 3 success 2 failed 1", summary)
	}
	if len(summary.PhotoIDs) != 3 {
		t.Fatalf("summary lists %d photo ids, want 3", len(summary.PhotoIDs))
	}
}

func TestReprocessEventUnknownEvent(t *testing.T) {
	f := newIngestFixture(t)

	_, err := newReprocessService(f).ReprocessEvent(context.Background(), "no-such-event")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("got %v, want ErrEventNotFound", err)
	}
}

func TestListReprocessTargets(t *testing.T) {
	f := newIngestFixture(t)
	event := f.createEvent(t, "targets", nil)
	other := f.createEvent(t, "other", nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.svc.CreatePhoto(ctx, jpegBytes(t, 200, 150), "a.jpg", event.ID, nil); err != nil {
			t.Fatalf("CreatePhoto: %v", err)
		}
	}
	if _, err := f.svc.CreatePhoto(ctx, jpegBytes(t, 200, 150), "b.jpg", other.ID, nil); err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	ids, err := newReprocessService(f).ListReprocessTargets(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListReprocessTargets: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d targets, want 2 scoped to the event", len(ids))
	}
}
