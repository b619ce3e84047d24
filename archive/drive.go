// Package archive mirrors original photo bytes to Google Drive. The mirror is
// a side-channel, not a source of truth: every failure is logged and swallowed
// so archival can never fail an ingestion.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/eventpix/backend/config"
	"github.com/eventpix/backend/repository"
)

// RootFolderName is the fixed top-level archival folder. One subfolder per
// event, named by slug, lives under it.
const RootFolderName = "EVENTPIX_ARCHIVE"

const folderMimeType = "application/vnd.google-apps.folder"

// DriveArchiver uploads originals into the per-event Drive hierarchy and
// records the resulting file id on the Photo.
type DriveArchiver struct {
	svc    *drive.Service
	photos repository.PhotoRepositoryInterface
}

func NewDriveArchiver(ctx context.Context, cfg config.DriveConfig, photos repository.PhotoRepositoryInterface) (*DriveArchiver, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return &DriveArchiver{svc: svc, photos: photos}, nil
}

// Archive uploads data under RootFolderName/<eventSlug>/<filename> and sets
// the photo's archive reference. Never returns an error: a failed mirror is
// observable only through logs and the photo's null archive_ref.
func (a *DriveArchiver) Archive(photoID, eventSlug, filename string, data []byte) {
	rootID, err := a.getOrCreateFolder(RootFolderName, "")
	if err != nil {
		zap.L().Warn("archival skipped: root folder unavailable", zap.Error(err))
		return
	}

	eventFolderID, err := a.getOrCreateFolder(eventSlug, rootID)
	if err != nil {
		zap.L().Warn("archival skipped: event folder unavailable",
			zap.String("event", eventSlug), zap.Error(err))
		return
	}

	file, err := a.svc.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{eventFolderID},
	}).Media(bytes.NewReader(data)).Fields("id").Do()
	if err != nil {
		zap.L().Warn("archival upload failed",
			zap.String("photo_id", photoID), zap.Error(err))
		return
	}

	if err := a.photos.SetArchiveRef(photoID, file.Id); err != nil {
		zap.L().Warn("failed to record archive ref",
			zap.String("photo_id", photoID), zap.Error(err))
		return
	}

	zap.L().Info("photo archived",
		zap.String("photo_id", photoID),
		zap.String("path", RootFolderName+"/"+eventSlug+"/"+filename),
		zap.String("archive_ref", file.Id))
}

// Trash moves an archived copy to the Drive trash, best-effort.
func (a *DriveArchiver) Trash(archiveRef string) {
	_, err := a.svc.Files.Update(archiveRef, &drive.File{Trashed: true}).Do()
	if err != nil {
		zap.L().Warn("failed to trash archived copy",
			zap.String("archive_ref", archiveRef), zap.Error(err))
	}
}

// getOrCreateFolder finds a folder by name (optionally under a parent) or
// creates it, so repeated archivals stay idempotent at the folder level.
func (a *DriveArchiver) getOrCreateFolder(name, parentID string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryValue(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := a.svc.Files.List().Q(query).Fields("files(id)").Do()
	if err != nil {
		return "", fmt.Errorf("folder lookup failed for '%s': %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder := &drive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}
	created, err := a.svc.Files.Create(folder).Fields("id").Do()
	if err != nil {
		return "", fmt.Errorf("folder creation failed for '%s': %w", name, err)
	}
	return created.Id, nil
}

func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
