package dto

// EnhanceRequest is the POST /api/v1/enhance body.
type EnhanceRequest struct {
	Prompt     string   `json:"prompt"`
	Mode       string   `json:"mode,omitempty"`
	Techniques []string `json:"techniques,omitempty"`
	Preset     string   `json:"preset,omitempty"`
	Provider   string   `json:"provider,omitempty"`
}

// EnhanceResponse is the enhancement result payload.
type EnhanceResponse struct {
	EnhancedText      string  `json:"enhanced_text"`
	Score             float64 `json:"score"`
	ProviderUsed      string  `json:"provider_used"`
	Cached            bool    `json:"cached"`
	TechniquesApplied int     `json:"techniques_applied"`
	OriginalLength    int     `json:"original_length"`
	EnhancedLength    int     `json:"enhanced_length"`
}

// SuggestionsResponse is the GET /api/v1/suggestions payload.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// PromptResponse is one saved prompt record.
type PromptResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Category           string  `json:"category"`
	OriginalText       string  `json:"original_text"`
	EnhancedText       string  `json:"enhanced_text"`
	EffectivenessScore float64 `json:"effectiveness_score"`
	IsFavorite         bool    `json:"is_favorite"`
	UsageCount         int     `json:"usage_count"`
	CreatedAt          string  `json:"created_at"`
}

// CreatePromptRequest is the POST /api/v1/prompts body.
type CreatePromptRequest struct {
	OriginalText string  `json:"original_text"`
	EnhancedText string  `json:"enhanced_text"`
	Category     string  `json:"category,omitempty"`
	Score        float64 `json:"score,omitempty"`
}

// AnalyticsResponse is the GET /api/v1/analytics payload.
type AnalyticsResponse struct {
	PromptsEnhanced   int     `json:"prompts_enhanced"`
	TotalUsage        int     `json:"total_usage"`
	TimeSavedSeconds  float64 `json:"time_saved"`
	TodayEnhancements int     `json:"today_enhancements"`
	FavoritesCount    int     `json:"favorites_count"`
	AverageScore      float64 `json:"average_score"`
}
