package services

// Archiver mirrors original photo bytes to a remote archival store. Archive is
// fire-and-forget: implementations log failures and never propagate them, so
// callers may invoke it from a detached goroutine and drop the reference.
type Archiver interface {
	Archive(photoID, eventSlug, filename string, data []byte)
	// Trash best-effort removes an archived copy by its reference.
	Trash(archiveRef string)
}

// NopArchiver is used when no archival credentials are configured.
type NopArchiver struct{}

func (NopArchiver) Archive(photoID, eventSlug, filename string, data []byte) {}

func (NopArchiver) Trash(archiveRef string) {}
