package handlers

import (
	"net/http"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/scoring"
)

type PerformanceHandler struct {
	cache  *cache.Cache
	scorer *scoring.Scorer
}

func NewPerformanceHandler(c *cache.Cache, scorer *scoring.Scorer) *PerformanceHandler {
	return &PerformanceHandler{cache: c, scorer: scorer}
}

type performanceResponse struct {
	Cache   cache.Stats        `json:"cache"`
	Latency cache.LatencyStats `json:"latency"`
}

// Stats is a read-only operational snapshot, no side effects.
func (h *PerformanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, performanceResponse{
		Cache:   h.cache.Stats(),
		Latency: h.cache.LatencyStats(),
	}, http.StatusOK)
}

// Suggestions returns advisory improvements for the prompt in ?text=.
func (h *PerformanceHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	respondJSON(w, r, dto.SuggestionsResponse{
		Suggestions: h.scorer.Suggestions(text),
	}, http.StatusOK)
}
