package models

import (
	"strings"
	"time"
)

// Mode selects the enhancement strategy applied to a prompt.
type Mode string

const (
	// ModeRewrite assembles technique blocks around the original prompt.
	ModeRewrite Mode = "rewrite"
	// ModeCompress strips filler phrasing to reduce token usage.
	ModeCompress Mode = "compress"
)

// ParseMode validates a mode string. An empty string defaults to rewrite.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRewrite:
		return ModeRewrite, true
	case ModeCompress:
		return ModeCompress, true
	default:
		return "", false
	}
}

// Provider paths that can produce an enhancement result.
const (
	ProviderExternalLLM = "external-llm"
	ProviderFallback    = "fallback"
	ProviderCacheHit    = "cache-hit"
)

// EnhancementResult is the outcome of one enhancement request.
// Cached copies are immutable once stored.
type EnhancementResult struct {
	EnhancedText      string        `json:"enhanced_text"`
	Score             float64       `json:"score"`
	Provider          string        `json:"provider_used"`
	Cached            bool          `json:"cached"`
	TechniquesApplied int           `json:"techniques_applied"`
	OriginalLength    int           `json:"original_length"`
	EnhancedLength    int           `json:"enhanced_length"`
	Duration          time.Duration `json:"-"`
}

// UsageMetrics are read-only inputs to the effectiveness scorer,
// supplied by the persistence layer. Zero values are valid defaults.
type UsageMetrics struct {
	UsageCount       int     `json:"usage_count"`
	UserFeedback     float64 `json:"user_feedback"` // already normalized 0-1
	TimeSavedSeconds float64 `json:"time_saved"`
	SuccessRate      float64 `json:"success_rate"` // already normalized 0-1
}
