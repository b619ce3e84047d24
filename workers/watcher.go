// Package workers hosts the long-lived intake processes: the filesystem
// watcher over the per-event drop directories and the FTP front door that
// feeds it.
package workers

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/facette/natsort"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventpix/backend/media"
	"github.com/eventpix/backend/models"
	"github.com/eventpix/backend/repository"
)

// Arrival-detection timings: a file counts as fully written once its size has
// held still for quietPeriod, and stays blocked for cooldownWindow afterwards
// to absorb duplicate notifications for the same write.
const (
	quietPeriod    = 1500 * time.Millisecond
	pollInterval   = 100 * time.Millisecond
	cooldownWindow = 5 * time.Second
)

// PhotoCreator is the slice of the ingestion service the watcher needs.
type PhotoCreator interface {
	CreatePhoto(ctx context.Context, data []byte, filename, eventID string, momentID *string) (*models.Photo, error)
}

// IntakeWatcher observes the intake root, one subdirectory per event slug, and
// feeds arrived files into the ingestion pipeline. Successfully processed
// files are relocated into a mirrored processed tree so they are never picked
// up again; failed files stay in place for the next filesystem event.
type IntakeWatcher struct {
	intakeRoot    string
	processedRoot string

	events  repository.EventRepositoryInterface
	creator PhotoCreator

	fsw     *fsnotify.Watcher
	tracker *PathTracker
	done    chan struct{}
}

func NewIntakeWatcher(intakeRoot, processedRoot string, events repository.EventRepositoryInterface, creator PhotoCreator) *IntakeWatcher {
	w := &IntakeWatcher{
		intakeRoot:    intakeRoot,
		processedRoot: processedRoot,
		events:        events,
		creator:       creator,
		done:          make(chan struct{}),
	}
	w.tracker = NewPathTracker(quietPeriod, pollInterval, cooldownWindow, w.handleArrived)
	return w
}

// Start creates the intake directories, registers filesystem watches, scans
// files already present and launches the event loop.
func (w *IntakeWatcher) Start() error {
	for _, dir := range []string{w.intakeRoot, w.processedRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// pre-create a drop directory per known event so photographers can
	// connect and upload before the first file ever lands
	if slugs, err := w.events.ListSlugs(); err == nil {
		for _, slug := range slugs {
			if err := os.MkdirAll(filepath.Join(w.intakeRoot, slug), 0755); err != nil {
				zap.L().Warn("failed to pre-create intake directory", zap.String("slug", slug), zap.Error(err))
			}
		}
	} else {
		zap.L().Warn("failed to list event slugs", zap.Error(err))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	if err := w.watchTree(); err != nil {
		fsw.Close()
		return err
	}

	w.scanExisting()

	go w.loop()
	zap.L().Info("intake watcher started", zap.String("root", w.intakeRoot))
	return nil
}

func (w *IntakeWatcher) Stop() {
	close(w.done)
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.tracker.Wait()
}

// watchTree registers the root and every eligible subdirectory; fsnotify does
// not recurse on its own.
func (w *IntakeWatcher) watchTree() error {
	return filepath.WalkDir(w.intakeRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.intakeRoot && w.ignoredSegment(filepath.Base(path)) {
			return fs.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// scanExisting queues files already sitting in the intake tree at startup, in
// natural filename order so multi-shot sequences process predictably.
func (w *IntakeWatcher) scanExisting() {
	var candidates []string
	_ = filepath.WalkDir(w.intakeRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if w.eligible(path) {
			candidates = append(candidates, path)
		}
		return nil
	})

	natsort.Sort(candidates)
	for _, path := range candidates {
		w.tracker.Notify(path)
	}
	if len(candidates) > 0 {
		zap.L().Info("queued files found at startup", zap.Int("count", len(candidates)))
	}
}

func (w *IntakeWatcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.ignoredSegment(filepath.Base(event.Name)) {
						if err := w.fsw.Add(event.Name); err != nil {
							zap.L().Warn("failed to watch new directory",
								zap.String("dir", event.Name), zap.Error(err))
						}
					}
					continue
				}
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				if w.eligible(event.Name) {
					w.tracker.Notify(event.Name)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			zap.L().Error("watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *IntakeWatcher) ignoredSegment(segment string) bool {
	return strings.HasPrefix(segment, ".") ||
		strings.HasPrefix(segment, "_") ||
		segment == "processed"
}

// eligible applies the intake filter: a visible image file at least one event
// directory deep, outside any processed or underscore-prefixed subtree.
func (w *IntakeWatcher) eligible(path string) bool {
	rel, err := filepath.Rel(w.intakeRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return false // root-level files have no event slug
	}
	for _, part := range parts {
		if w.ignoredSegment(part) {
			return false
		}
	}
	return media.IsRasterImage(path)
}

// handleArrived runs once the tracker decides a file is fully written.
func (w *IntakeWatcher) handleArrived(path string) {
	rel, err := filepath.Rel(w.intakeRoot, path)
	if err != nil {
		return
	}
	slug := strings.Split(filepath.ToSlash(rel), "/")[0]
	filename := filepath.Base(path)

	event, err := w.events.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("no event for intake directory, leaving file in place",
				zap.String("slug", slug), zap.String("file", rel))
		} else {
			zap.L().Error("event lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Error("failed to read intake file", zap.String("path", path), zap.Error(err))
		return
	}

	photo, err := w.creator.CreatePhoto(context.Background(), data, filename, event.ID, nil)
	if err != nil {
		// leave the file; the next filesystem event for this path retries,
		// bounded by the cool-down window
		zap.L().Error("ingestion failed, leaving file in place",
			zap.String("file", rel), zap.Error(err))
		return
	}

	zap.L().Info("intake file processed",
		zap.String("file", rel), zap.String("photo_id", photo.ID))

	w.moveToProcessed(path, slug, filename)
}

// moveToProcessed renames the source into the mirrored processed tree, keeping
// a local backup independent of the archival outcome.
func (w *IntakeWatcher) moveToProcessed(path, slug, filename string) {
	targetDir := filepath.Join(w.processedRoot, slug)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		zap.L().Error("failed to create processed directory", zap.String("dir", targetDir), zap.Error(err))
		return
	}
	target := filepath.Join(targetDir, filename)
	if err := os.Rename(path, target); err != nil {
		zap.L().Error("failed to move file to processed tree",
			zap.String("from", path), zap.String("to", target), zap.Error(err))
	}
}
