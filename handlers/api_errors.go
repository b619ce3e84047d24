package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eventpix/backend/services"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteServiceError maps the pipeline's typed errors onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		WriteAPIError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, services.ErrPhotoNotFound):
		WriteAPIError(w, http.StatusNotFound, "photo_not_found", err.Error())
	case errors.Is(err, services.ErrDecodeFailed):
		WriteAPIError(w, http.StatusUnprocessableEntity, "decode_failed", err.Error())
	case errors.Is(err, services.ErrSourceUnavailable):
		WriteAPIError(w, http.StatusConflict, "source_unavailable", err.Error())
	case errors.Is(err, services.ErrCompositeFailed):
		WriteAPIError(w, http.StatusUnprocessableEntity, "composite_failed", err.Error())
	default:
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// WriteJSON writes a JSON payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
