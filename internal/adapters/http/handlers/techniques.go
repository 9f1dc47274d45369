package handlers

import (
	"net/http"

	"github.com/promptpilot/promptpilot/internal/techniques"
)

type TechniquesHandler struct{}

func NewTechniquesHandler() *TechniquesHandler {
	return &TechniquesHandler{}
}

// List serves the static catalog for client discovery.
func (h *TechniquesHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, techniques.Info(), http.StatusOK)
}
