package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/eventpix/backend/database"
)

// StatsHandler reports stored-photo footprints for the operator dashboard.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

func (h *StatsHandler) StorageStats(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.DB.DB()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "database unavailable")
		return
	}

	stats, err := database.CollectStorageStats(sqlDB)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
