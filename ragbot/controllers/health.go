package controllers

import (
	"fmt"
	"net/http"

	"ragbot/ragbot/conversation"
)

// HealthController reports liveness plus the number of tracked chat sessions.
type HealthController struct {
	sessions *conversation.Store
}

func NewHealthController(sessions *conversation.Store) *HealthController {
	return &HealthController{sessions: sessions}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status": "ok", "sessions": %d}`, h.sessions.Len())
}
