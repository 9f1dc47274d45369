package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/adapters/http/middleware"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/ports"
)

type AnalyticsHandler struct {
	analytics ports.AnalyticsRepository
	prompts   ports.PromptRepository
}

func NewAnalyticsHandler(analytics ports.AnalyticsRepository, prompts ports.PromptRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, prompts: prompts}
}

// Get returns the caller's usage aggregates. Users with no recorded
// activity get a zeroed payload rather than a 404.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	resp := dto.AnalyticsResponse{}

	record, err := h.analytics.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrAnalyticsNotFound) {
		respondError(w, "internal_error", "Failed to load analytics", http.StatusInternalServerError)
		return
	}
	if record != nil {
		resp.PromptsEnhanced = record.PromptsEnhanced
		resp.TotalUsage = record.TotalUsage
		resp.TimeSavedSeconds = record.TimeSavedSeconds
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	if today, err := h.prompts.CountSince(ctx, userID, midnight.Unix()); err == nil {
		resp.TodayEnhancements = today
	}
	if favorites, err := h.prompts.CountFavorites(ctx, userID); err == nil {
		resp.FavoritesCount = favorites
	}
	if avg, err := h.prompts.AverageScore(ctx, userID); err == nil {
		resp.AverageScore = avg
	}

	respondJSON(w, r, resp, http.StatusOK)
}
