package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	service string
}

func NewHealthHandler(service string) *HealthHandler { return &HealthHandler{service: service} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "action") == "ping" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong", Service: h.service})
		return
	}
	writeError(w, http.StatusBadRequest, "unknown action")
}
