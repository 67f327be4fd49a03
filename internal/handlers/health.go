package handlers

import (
	"net/http"
	"time"

	"gollmf-backend/internal/models"
)

// ISO-8601 in UTC with millisecond precision, e.g. 2025-01-02T03:04:05.678Z.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	hasOpenAIKey bool
	now          func() time.Time
}

func NewHealthHandler(hasOpenAIKey bool) *HealthHandler {
	return &HealthHandler{hasOpenAIKey: hasOpenAIKey, now: time.Now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:       "ok",
		Timestamp:    h.now().UTC().Format(isoTimestamp),
		HasOpenAIKey: h.hasOpenAIKey,
	})
}
