package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventpix/backend/services"
)

// ReprocessHandler drives re-branding of already-ingested photos.
type ReprocessHandler struct {
	Svc *services.ReprocessService
}

func NewReprocessHandler(svc *services.ReprocessService) *ReprocessHandler {
	return &ReprocessHandler{Svc: svc}
}

func (h *ReprocessHandler) ReprocessPhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.ReprocessPhoto(r.Context(), chi.URLParam(r, "photoID")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ReprocessEvent runs the bulk path: sequential, per-item failure isolation,
// tally in the response.
func (h *ReprocessHandler) ReprocessEvent(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Svc.ReprocessEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// ListTargets enumerates the photo ids a bulk run would cover, letting callers
// drive single-photo reprocessing themselves with progress reporting.
func (h *ReprocessHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Svc.ListReprocessTargets(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"photo_ids": ids, "total": len(ids)})
}
