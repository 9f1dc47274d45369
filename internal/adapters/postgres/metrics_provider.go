package postgres

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

// MetricsProvider assembles scoring inputs for a stored prompt from
// the persisted usage counters. Feedback and success rate have no
// storage yet and stay at their zero defaults.
type MetricsProvider struct {
	prompts *PromptRepository
}

func NewMetricsProvider(prompts *PromptRepository) *MetricsProvider {
	return &MetricsProvider{prompts: prompts}
}

func (p *MetricsProvider) MetricsFor(ctx context.Context, promptID string) (models.UsageMetrics, error) {
	prompt, err := p.prompts.GetByID(ctx, promptID)
	if err != nil {
		return models.UsageMetrics{}, err
	}
	return models.UsageMetrics{
		UsageCount:       prompt.UsageCount,
		TimeSavedSeconds: float64(prompt.UsageCount) * 30,
	}, nil
}
