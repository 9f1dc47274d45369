package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
)

type PromptRepository struct {
	BaseRepository
}

func NewPromptRepository(pool *pgxpool.Pool) *PromptRepository {
	return &PromptRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *PromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO promptpilot_prompts (
			id, user_id, title, category, original_text, enhanced_text,
			effectiveness_score, is_favorite, usage_count, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	category := prompt.Category
	if category == "" {
		category = "general"
	}

	_, err := r.conn(ctx).Exec(ctx, query,
		prompt.ID,
		prompt.UserID,
		prompt.Title,
		category,
		prompt.OriginalText,
		prompt.EnhancedText,
		prompt.EffectivenessScore,
		prompt.IsFavorite,
		prompt.UsageCount,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)

	return err
}

func (r *PromptRepository) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, title, category, original_text, enhanced_text,
			effectiveness_score, is_favorite, usage_count, created_at, updated_at
		FROM promptpilot_prompts
		WHERE id = $1 AND deleted_at IS NULL`

	return r.scanPrompt(r.conn(ctx).QueryRow(ctx, query, id))
}

func (r *PromptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Prompt, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, title, category, original_text, enhanced_text,
			effectiveness_score, is_favorite, usage_count, created_at, updated_at
		FROM promptpilot_prompts
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.conn(ctx).Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPrompts(rows)
}

func (r *PromptRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE promptpilot_prompts
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPromptNotFound
	}
	return nil
}

func (r *PromptRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE promptpilot_prompts
		SET is_favorite = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.conn(ctx).Exec(ctx, query, favorite, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPromptNotFound
	}
	return nil
}

func (r *PromptRepository) CountFavorites(ctx context.Context, userID string) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM promptpilot_prompts
		WHERE user_id = $1 AND is_favorite = TRUE AND deleted_at IS NULL`

	var count int
	err := r.conn(ctx).QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *PromptRepository) IncrementUsage(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE promptpilot_prompts
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPromptNotFound
	}
	return nil
}

func (r *PromptRepository) AverageScore(ctx context.Context, userID string) (float64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(AVG(effectiveness_score), 0)
		FROM promptpilot_prompts
		WHERE user_id = $1 AND deleted_at IS NULL`

	var avg float64
	err := r.conn(ctx).QueryRow(ctx, query, userID).Scan(&avg)
	return avg, err
}

func (r *PromptRepository) CountSince(ctx context.Context, userID string, since int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM promptpilot_prompts
		WHERE user_id = $1 AND created_at >= to_timestamp($2) AND deleted_at IS NULL`

	var count int
	err := r.conn(ctx).QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}

func (r *PromptRepository) scanPrompt(row pgx.Row) (*models.Prompt, error) {
	var p models.Prompt

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Category,
		&p.OriginalText,
		&p.EnhancedText,
		&p.EffectivenessScore,
		&p.IsFavorite,
		&p.UsageCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPromptNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PromptRepository) scanPrompts(rows pgx.Rows) ([]*models.Prompt, error) {
	var prompts []*models.Prompt

	for rows.Next() {
		var p models.Prompt

		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.Category,
			&p.OriginalText,
			&p.EnhancedText,
			&p.EffectivenessScore,
			&p.IsFavorite,
			&p.UsageCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		prompts = append(prompts, &p)
	}

	return prompts, rows.Err()
}
