// Package storage provides the backend abstraction for the three photo
// variants. Exactly one backend is active per deployment, chosen at
// configuration time; keys are backend-independent and stored verbatim on the
// Photo record so they round-trip between backends.
package storage

import (
	"context"
	"errors"
)

// Collection prefixes for the three variant key spaces.
const (
	CollectionOriginals  = "originals"
	CollectionPreviews   = "previews"
	CollectionThumbnails = "thumbnails"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("storage: object not found")

// Store is the uniform put/get contract both backends implement. Calls are
// stateless between invocations and safe for concurrent use.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// OriginalKey returns the archival-original key for a generated photo name.
func OriginalKey(name string) string {
	return CollectionOriginals + "/" + name
}

// PreviewKey returns the branded-preview key for a generated photo name.
func PreviewKey(name string) string {
	return CollectionPreviews + "/" + name
}

// ThumbnailKey returns the thumbnail key for a generated photo name.
func ThumbnailKey(name string) string {
	return CollectionThumbnails + "/" + name
}
