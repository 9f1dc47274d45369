package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptpilot/promptpilot/internal/adapters/http/middleware"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
)

// Helper function to add user context to requests
func addUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// setURLParam adds a URL parameter to the request context (chi router style)
func setURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// MockIDGenerator is a mock ID generator for testing
type MockIDGenerator struct {
	counter int
}

func (m *MockIDGenerator) nextID(prefix string) string {
	m.counter++
	return fmt.Sprintf("%s_test_%d", prefix, m.counter)
}

func (m *MockIDGenerator) PromptID() string    { return m.nextID("pp") }
func (m *MockIDGenerator) AnalyticsID() string { return m.nextID("pa") }
func (m *MockIDGenerator) RequestID() string   { return m.nextID("pr") }

// MockPromptRepository is an in-memory prompt repository for handler tests
type MockPromptRepository struct {
	prompts map[string]*models.Prompt
	err     error
}

func NewMockPromptRepository() *MockPromptRepository {
	return &MockPromptRepository{prompts: make(map[string]*models.Prompt)}
}

func (m *MockPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if m.err != nil {
		return m.err
	}
	cp := *prompt
	m.prompts[prompt.ID] = &cp
	return nil
}

func (m *MockPromptRepository) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.prompts[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrPromptNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPromptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Prompt, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Prompt
	for _, p := range m.prompts {
		if p.UserID == userID && p.DeletedAt == nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPromptRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.prompts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrPromptNotFound
	}
	now := p.UpdatedAt
	p.DeletedAt = &now
	return nil
}

func (m *MockPromptRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.prompts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrPromptNotFound
	}
	p.IsFavorite = favorite
	return nil
}

func (m *MockPromptRepository) CountFavorites(ctx context.Context, userID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, p := range m.prompts {
		if p.UserID == userID && p.IsFavorite && p.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (m *MockPromptRepository) IncrementUsage(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.prompts[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrPromptNotFound
	}
	p.UsageCount++
	return nil
}

func (m *MockPromptRepository) AverageScore(ctx context.Context, userID string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	sum, count := 0.0, 0
	for _, p := range m.prompts {
		if p.UserID == userID && p.DeletedAt == nil {
			sum += p.EffectivenessScore
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (m *MockPromptRepository) CountSince(ctx context.Context, userID string, since int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, p := range m.prompts {
		if p.UserID == userID && p.DeletedAt == nil && p.CreatedAt.Unix() >= since {
			count++
		}
	}
	return count, nil
}

// MockTxManager counts transactions and runs the function inline
type MockTxManager struct {
	calls int
}

func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// MockMetricsProvider derives scoring inputs from the mock prompt store
type MockMetricsProvider struct {
	repo *MockPromptRepository
}

func (m *MockMetricsProvider) MetricsFor(ctx context.Context, promptID string) (models.UsageMetrics, error) {
	p, err := m.repo.GetByID(ctx, promptID)
	if err != nil {
		return models.UsageMetrics{}, err
	}
	return models.UsageMetrics{
		UsageCount:       p.UsageCount,
		TimeSavedSeconds: float64(p.UsageCount) * 30,
	}, nil
}

// MockAnalyticsRepository is an in-memory analytics repository for handler tests
type MockAnalyticsRepository struct {
	records map[string]*models.Analytics
	err     error
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{records: make(map[string]*models.Analytics)}
}

func (m *MockAnalyticsRepository) GetByUser(ctx context.Context, userID string) (*models.Analytics, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrAnalyticsNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAnalyticsRepository) Upsert(ctx context.Context, analytics *models.Analytics) error {
	if m.err != nil {
		return m.err
	}
	cp := *analytics
	m.records[analytics.UserID] = &cp
	return nil
}

func (m *MockAnalyticsRepository) RecordEnhancement(ctx context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.records[userID]
	if !ok {
		return domain.ErrAnalyticsNotFound
	}
	a.RecordEnhancement()
	return nil
}
