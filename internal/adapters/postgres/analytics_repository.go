package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
)

type AnalyticsRepository struct {
	BaseRepository
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *AnalyticsRepository) GetByUser(ctx context.Context, userID string) (*models.Analytics, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, prompts_enhanced, total_usage, time_saved,
			last_activity, created_at, updated_at
		FROM promptpilot_analytics
		WHERE user_id = $1`

	var a models.Analytics
	err := r.conn(ctx).QueryRow(ctx, query, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.PromptsEnhanced,
		&a.TotalUsage,
		&a.TimeSavedSeconds,
		&a.LastActivity,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnalyticsNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *AnalyticsRepository) Upsert(ctx context.Context, a *models.Analytics) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO promptpilot_analytics (
			id, user_id, prompts_enhanced, total_usage, time_saved,
			last_activity, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (user_id) DO UPDATE SET
			prompts_enhanced = EXCLUDED.prompts_enhanced,
			total_usage = EXCLUDED.total_usage,
			time_saved = EXCLUDED.time_saved,
			last_activity = EXCLUDED.last_activity,
			updated_at = EXCLUDED.updated_at`

	_, err := r.conn(ctx).Exec(ctx, query,
		a.ID,
		a.UserID,
		a.PromptsEnhanced,
		a.TotalUsage,
		a.TimeSavedSeconds,
		a.LastActivity,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

// RecordEnhancement bumps the per-user counters after an enhancement.
// Each enhancement is credited with 30 seconds of saved effort. The
// row must already exist; callers create it via Upsert on first use.
func (r *AnalyticsRepository) RecordEnhancement(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE promptpilot_analytics
		SET prompts_enhanced = prompts_enhanced + 1,
			total_usage = total_usage + 1,
			time_saved = time_saved + 30,
			last_activity = NOW(),
			updated_at = NOW()
		WHERE user_id = $1`

	result, err := r.conn(ctx).Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAnalyticsNotFound
	}
	return nil
}
