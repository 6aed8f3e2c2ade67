package handlers

import (
	"net/http"
	"time"
)

// WelcomeMessage is served on GET /
const WelcomeMessage = "Welcome to BattleBrain! POST two Pokemon IDs to /predict."

// Home returns the welcome payload. It does not touch the catalog or model.
// @Summary Welcome
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	loaded := h.catalog.Loaded()

	status := http.StatusOK
	if !loaded {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready": loaded,
		"catalog": map[string]interface{}{
			"loaded":  loaded,
			"entries": h.catalog.Len(),
			"version": h.catalog.Version(),
		},
		"model": h.prediction.ModelName(),
	})
}
