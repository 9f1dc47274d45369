package models

import (
	"strings"
	"time"
)

// MaxFavorites is the per-user cap on favorited prompts.
const MaxFavorites = 10

// Prompt is a saved enhancement owned by a user.
type Prompt struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Category           string     `json:"category"`
	OriginalText       string     `json:"original_text"`
	EnhancedText       string     `json:"enhanced_text"`
	EffectivenessScore float64    `json:"effectiveness_score"`
	IsFavorite         bool       `json:"is_favorite"`
	UsageCount         int        `json:"usage_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

// NewPrompt creates a prompt record. The title is derived from the
// original text when empty.
func NewPrompt(id, userID, original, enhanced string, score float64) *Prompt {
	now := time.Now()
	return &Prompt{
		ID:                 id,
		UserID:             userID,
		Title:              TitleFromText(original),
		Category:           "general",
		OriginalText:       original,
		EnhancedText:       enhanced,
		EffectivenessScore: score,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TitleFromText truncates text to a short display title.
func TitleFromText(text string) string {
	t := strings.TrimSpace(text)
	if len(t) > 50 {
		return t[:50] + "..."
	}
	return t
}

// RecordUse bumps the usage counter.
func (p *Prompt) RecordUse() {
	p.UsageCount++
	p.UpdatedAt = time.Now()
}

// Analytics aggregates per-user enhancement activity.
type Analytics struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PromptsEnhanced  int       `json:"prompts_enhanced"`
	TotalUsage       int       `json:"total_usage"`
	TimeSavedSeconds float64   `json:"time_saved"`
	LastActivity     time.Time `json:"last_activity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewAnalytics creates an empty analytics record for a user.
func NewAnalytics(id, userID string) *Analytics {
	now := time.Now()
	return &Analytics{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordEnhancement updates counters after a successful enhancement.
// Each enhancement is credited with 30 seconds of saved effort.
func (a *Analytics) RecordEnhancement() {
	now := time.Now()
	a.PromptsEnhanced++
	a.TotalUsage++
	a.TimeSavedSeconds += 30
	a.LastActivity = now
	a.UpdatedAt = now
}
