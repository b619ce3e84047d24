package services

import "errors"

// Typed pipeline errors. Callers match with errors.Is; handlers map them to
// HTTP statuses.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrDecodeFailed marks input bytes that are not a decodable image.
	// Retrying the same bytes will not help.
	ErrDecodeFailed = errors.New("image decode failed")

	// ErrStorageWrite marks a failed variant write. The enclosing operation
	// aborts and no Photo record is persisted.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrSourceUnavailable marks a reprocessing run whose stored original
	// could not be fetched back from the backend.
	ErrSourceUnavailable = errors.New("stored original unavailable")

	// ErrCompositeFailed marks a reprocessing run whose stored original no
	// longer composites cleanly.
	ErrCompositeFailed = errors.New("compositing failed")
)
