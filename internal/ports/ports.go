// Package ports defines the interfaces between the domain services and
// their adapters. Implementations live under internal/adapters.
package ports

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

// PromptRepository persists saved prompt records.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	GetByID(ctx context.Context, id string) (*models.Prompt, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Prompt, error)
	Delete(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	CountFavorites(ctx context.Context, userID string) (int, error)
	IncrementUsage(ctx context.Context, id string) error
	AverageScore(ctx context.Context, userID string) (float64, error)
	CountSince(ctx context.Context, userID string, since int64) (int, error)
}

// AnalyticsRepository persists per-user usage aggregates.
type AnalyticsRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.Analytics, error)
	Upsert(ctx context.Context, analytics *models.Analytics) error
	RecordEnhancement(ctx context.Context, userID string) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	// WithTransaction executes a function within a database transaction
	// If the function returns an error, the transaction is rolled back
	// Otherwise, the transaction is committed
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Refiner turns a composed prompt into a polished one via an external
// model. Implementations must honor ctx cancellation.
type Refiner interface {
	Refine(ctx context.Context, composed string, mode models.Mode) (string, error)
}

// IDGenerator creates unique identifiers for domain entities.
type IDGenerator interface {
	PromptID() string
	AnalyticsID() string
	RequestID() string
}

// UsageMetricsProvider supplies scoring inputs for a stored prompt.
type UsageMetricsProvider interface {
	MetricsFor(ctx context.Context, promptID string) (models.UsageMetrics, error)
}
