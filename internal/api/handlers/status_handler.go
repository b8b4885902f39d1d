package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/birthdaybot-be/internal/services"
)

// StatusHandler reports service and store health.
type StatusHandler struct {
	service services.StatusServiceProvider
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(service services.StatusServiceProvider) *StatusHandler {
	return &StatusHandler{service: service}
}

// Get serves the status document; 503 when the store cannot be reached.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := h.service.GetStatus(r.Context())

	code := http.StatusOK
	if status.Database != "ok" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
