package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/adapters/http/middleware"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
	"github.com/promptpilot/promptpilot/internal/ports"
	"github.com/promptpilot/promptpilot/internal/scoring"
)

const (
	defaultPromptLimit = 50
	maxPromptLimit     = 200
)

type PromptsHandler struct {
	repo    ports.PromptRepository
	ids     ports.IDGenerator
	scorer  *scoring.Scorer
	metrics ports.UsageMetricsProvider
	tx      ports.TransactionManager
}

func NewPromptsHandler(repo ports.PromptRepository, ids ports.IDGenerator,
	scorer *scoring.Scorer, metrics ports.UsageMetricsProvider,
	tx ports.TransactionManager) *PromptsHandler {
	return &PromptsHandler{repo: repo, ids: ids, scorer: scorer, metrics: metrics, tx: tx}
}

func promptToResponse(p *models.Prompt) dto.PromptResponse {
	return dto.PromptResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Category:           p.Category,
		OriginalText:       p.OriginalText,
		EnhancedText:       p.EnhancedText,
		EffectivenessScore: p.EffectivenessScore,
		IsFavorite:         p.IsFavorite,
		UsageCount:         p.UsageCount,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}

// List returns the caller's saved prompts, newest first.
func (h *PromptsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := parseIntQuery(r, "limit", defaultPromptLimit)
	if limit < 1 || limit > maxPromptLimit {
		limit = defaultPromptLimit
	}
	offset := parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	prompts, err := h.repo.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, "internal_error", "Failed to list prompts", http.StatusInternalServerError)
		return
	}

	responses := make([]dto.PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		responses = append(responses, promptToResponse(p))
	}

	respondJSON(w, r, responses, http.StatusOK)
}

// Create saves a prompt record for later reuse.
func (h *PromptsHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[dto.CreatePromptRequest](r, w)
	if !ok {
		return
	}

	if strings.TrimSpace(req.OriginalText) == "" {
		respondError(w, "invalid_request", "original_text is required", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r.Context())
	prompt := models.NewPrompt(h.ids.PromptID(), userID, req.OriginalText, req.EnhancedText, req.Score)
	if req.Category != "" {
		prompt.Category = req.Category
	}

	if err := h.repo.Create(r.Context(), prompt); err != nil {
		respondError(w, "internal_error", "Failed to save prompt", http.StatusInternalServerError)
		return
	}

	respondJSON(w, r, promptToResponse(prompt), http.StatusCreated)
}

// Get returns one prompt the caller owns.
func (h *PromptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "prompt ID")
	if !ok {
		return
	}

	prompt, ok := h.ownedPrompt(w, r, id)
	if !ok {
		return
	}

	respondJSON(w, r, promptToResponse(prompt), http.StatusOK)
}

// Delete soft-deletes a prompt the caller owns.
func (h *PromptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "prompt ID")
	if !ok {
		return
	}

	if _, ok := h.ownedPrompt(w, r, id); !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			respondError(w, "not_found", "Prompt not found", http.StatusNotFound)
			return
		}
		respondError(w, "internal_error", "Failed to delete prompt", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite flips the favorite flag. Favoriting is capped per user.
func (h *PromptsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "prompt ID")
	if !ok {
		return
	}

	prompt, ok := h.ownedPrompt(w, r, id)
	if !ok {
		return
	}

	next := !prompt.IsFavorite
	var err error
	if next {
		// the count check and the write must share one transaction so
		// concurrent requests cannot exceed the cap
		favorite := func(ctx context.Context) error {
			count, err := h.repo.CountFavorites(ctx, prompt.UserID)
			if err != nil {
				return err
			}
			if count >= models.MaxFavorites {
				return domain.ErrTooManyFavorites
			}
			return h.repo.SetFavorite(ctx, id, true)
		}
		if h.tx != nil {
			err = h.tx.WithTransaction(r.Context(), favorite)
		} else {
			err = favorite(r.Context())
		}
	} else {
		err = h.repo.SetFavorite(r.Context(), id, false)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyFavorites):
			respondError(w, "too_many_favorites", "Favorite limit reached", http.StatusConflict)
		case errors.Is(err, domain.ErrPromptNotFound):
			respondError(w, "not_found", "Prompt not found", http.StatusNotFound)
		default:
			respondError(w, "internal_error", "Failed to update prompt", http.StatusInternalServerError)
		}
		return
	}

	prompt.IsFavorite = next
	respondJSON(w, r, promptToResponse(prompt), http.StatusOK)
}

// RecordUse bumps the usage counter for a prompt the caller owns.
func (h *PromptsHandler) RecordUse(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "prompt ID")
	if !ok {
		return
	}

	prompt, ok := h.ownedPrompt(w, r, id)
	if !ok {
		return
	}

	if err := h.repo.IncrementUsage(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			respondError(w, "not_found", "Prompt not found", http.StatusNotFound)
			return
		}
		respondError(w, "internal_error", "Failed to update prompt", http.StatusInternalServerError)
		return
	}

	prompt.RecordUse()
	respondJSON(w, r, promptToResponse(prompt), http.StatusOK)
}

// Score returns the full effectiveness breakdown for a stored prompt,
// fed by its persisted usage counters.
func (h *PromptsHandler) Score(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "prompt ID")
	if !ok {
		return
	}

	prompt, ok := h.ownedPrompt(w, r, id)
	if !ok {
		return
	}

	metrics, err := h.metrics.MetricsFor(r.Context(), id)
	if err != nil {
		respondError(w, "internal_error", "Failed to load usage metrics", http.StatusInternalServerError)
		return
	}

	breakdown := h.scorer.Breakdown(prompt.OriginalText, prompt.EnhancedText, metrics)
	respondJSON(w, r, breakdown, http.StatusOK)
}

// ownedPrompt loads a prompt and hides records owned by other users
// behind a 404.
func (h *PromptsHandler) ownedPrompt(w http.ResponseWriter, r *http.Request, id string) (*models.Prompt, bool) {
	prompt, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			respondError(w, "not_found", "Prompt not found", http.StatusNotFound)
			return nil, false
		}
		respondError(w, "internal_error", "Failed to load prompt", http.StatusInternalServerError)
		return nil, false
	}

	if prompt.UserID != middleware.GetUserID(r.Context()) {
		respondError(w, "not_found", "Prompt not found", http.StatusNotFound)
		return nil, false
	}

	return prompt, true
}
