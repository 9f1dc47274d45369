package handlers

import (
	"errors"
	"net/http"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/adapters/http/middleware"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/enhancer"
)

type EnhanceHandler struct {
	service *enhancer.Service
}

func NewEnhanceHandler(service *enhancer.Service) *EnhanceHandler {
	return &EnhanceHandler{service: service}
}

func (h *EnhanceHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[dto.EnhanceRequest](r, w)
	if !ok {
		return
	}

	result, err := h.service.Enhance(r.Context(), enhancer.EnhanceInput{
		UserID:     middleware.GetUserID(r.Context()),
		Prompt:     req.Prompt,
		Mode:       req.Mode,
		Techniques: req.Techniques,
		Preset:     req.Preset,
		Provider:   req.Provider,
		Premium:    middleware.IsPremium(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPrompt):
			respondError(w, "empty_prompt", "Prompt cannot be empty", http.StatusBadRequest)
		case errors.Is(err, domain.ErrPromptTooLong):
			respondError(w, "prompt_too_long", "Prompt exceeds the maximum length", http.StatusBadRequest)
		case errors.Is(err, domain.ErrInvalidMode):
			respondError(w, "invalid_mode", "Mode must be 'rewrite' or 'compress'", http.StatusBadRequest)
		case errors.Is(err, domain.ErrUnknownPreset):
			respondError(w, "unknown_preset", "Unknown technique preset", http.StatusBadRequest)
		default:
			respondError(w, "internal_error", "Service temporarily unavailable", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, r, dto.EnhanceResponse{
		EnhancedText:      result.EnhancedText,
		Score:             result.Score,
		ProviderUsed:      result.Provider,
		Cached:            result.Cached,
		TechniquesApplied: result.TechniquesApplied,
		OriginalLength:    result.OriginalLength,
		EnhancedLength:    result.EnhancedLength,
	}, http.StatusOK)
}
