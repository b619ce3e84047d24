package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eventpix/backend/services"
)

// uploads are large originals; cap the multipart memory buffer, the rest
// spills to temp files
const maxUploadMemory = 32 << 20

// PhotoHandler exposes the synchronous upload endpoint and the photo
// lifecycle operations.
type PhotoHandler struct {
	Ingest *services.IngestService
	Photos *services.PhotoService
}

func NewPhotoHandler(ingest *services.IngestService, photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{Ingest: ingest, Photos: photos}
}

// Upload accepts a single file plus event id (and optional moment id) and runs
// the ingestion pipeline synchronously, returning the created Photo.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_multipart", "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_file", "no file uploaded")
		return
	}
	defer file.Close()

	eventID := r.FormValue("event_id")
	if eventID == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_event_id", "event_id is required")
		return
	}

	// the admin UI sends "all" when no moment filter is active
	var momentID *string
	if m := r.FormValue("moment_id"); m != "" && m != "all" {
		momentID = &m
	}

	data, err := io.ReadAll(file)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "read_failed", "failed to read uploaded file")
		return
	}

	photo, err := h.Ingest.CreatePhoto(r.Context(), data, header.Filename, eventID, momentID)
	if err != nil {
		zap.L().Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	photo, err := h.Photos.GetPhoto(r.Context(), chi.URLParam(r, "photoID"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Photos.DeletePhoto(r.Context(), chi.URLParam(r, "photoID")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
