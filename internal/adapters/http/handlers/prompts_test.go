package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/domain/models"
	"github.com/promptpilot/promptpilot/internal/scoring"
)

func newPromptsHandler(repo *MockPromptRepository) *PromptsHandler {
	scorer := scoring.NewScorer(scoring.DefaultConfig())
	return NewPromptsHandler(repo, &MockIDGenerator{}, scorer, &MockMetricsProvider{repo: repo}, &MockTxManager{})
}

func seedPrompt(repo *MockPromptRepository, id, userID string, favorite bool) *models.Prompt {
	p := models.NewPrompt(id, userID, "original text for "+id, "enhanced text for "+id, 82.5)
	p.IsFavorite = favorite
	repo.prompts[id] = p
	return p
}

func TestPromptsHandler_Create(t *testing.T) {
	repo := NewMockPromptRepository()
	handler := newPromptsHandler(repo)

	body := `{"original_text": "write docs", "enhanced_text": "write detailed docs", "score": 88}`
	req := httptest.NewRequest("POST", "/api/v1/prompts", strings.NewReader(body))
	req = addUserContext(req, "user_123")
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.PromptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected generated ID")
	}
	if resp.Title != "write docs" {
		t.Errorf("expected title from original text, got %q", resp.Title)
	}
	if resp.EffectivenessScore != 88 {
		t.Errorf("expected score 88, got %f", resp.EffectivenessScore)
	}
	if len(repo.prompts) != 1 {
		t.Errorf("expected 1 stored prompt, got %d", len(repo.prompts))
	}
}

func TestPromptsHandler_Create_MissingText(t *testing.T) {
	handler := newPromptsHandler(NewMockPromptRepository())

	req := httptest.NewRequest("POST", "/api/v1/prompts", strings.NewReader(`{"original_text": "  "}`))
	req = addUserContext(req, "user_123")
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestPromptsHandler_List_FiltersByUser(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	seedPrompt(repo, "pp_2", "user_123", false)
	seedPrompt(repo, "pp_3", "other_user", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("GET", "/api/v1/prompts", nil)
	req = addUserContext(req, "user_123")
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp []dto.PromptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected 2 prompts, got %d", len(resp))
	}
}

func TestPromptsHandler_Get_OtherUserHidden(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "other_user", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("GET", "/api/v1/prompts/pp_1", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for another user's prompt, got %d", rr.Code)
	}
}

func TestPromptsHandler_Delete(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("DELETE", "/api/v1/prompts/pp_1", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if repo.prompts["pp_1"].DeletedAt == nil {
		t.Error("expected soft delete to set DeletedAt")
	}
}

func TestPromptsHandler_Delete_NotFound(t *testing.T) {
	handler := newPromptsHandler(NewMockPromptRepository())

	req := httptest.NewRequest("DELETE", "/api/v1/prompts/pp_missing", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_missing")
	rr := httptest.NewRecorder()

	handler.Delete(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestPromptsHandler_ToggleFavorite(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("POST", "/api/v1/prompts/pp_1/favorite", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.ToggleFavorite(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !repo.prompts["pp_1"].IsFavorite {
		t.Error("expected prompt to be favorited")
	}

	// Toggle back off
	req = httptest.NewRequest("POST", "/api/v1/prompts/pp_1/favorite", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr = httptest.NewRecorder()

	handler.ToggleFavorite(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if repo.prompts["pp_1"].IsFavorite {
		t.Error("expected prompt to be unfavorited")
	}
}

func TestPromptsHandler_ToggleFavorite_UsesTransaction(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	tx := &MockTxManager{}
	scorer := scoring.NewScorer(scoring.DefaultConfig())
	handler := NewPromptsHandler(repo, &MockIDGenerator{}, scorer, &MockMetricsProvider{repo: repo}, tx)

	req := httptest.NewRequest("POST", "/api/v1/prompts/pp_1/favorite", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.ToggleFavorite(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if tx.calls != 1 {
		t.Errorf("expected favoriting to run in a transaction, got %d calls", tx.calls)
	}

	// Unfavoriting is a single write, no transaction needed
	req = httptest.NewRequest("POST", "/api/v1/prompts/pp_1/favorite", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr = httptest.NewRecorder()

	handler.ToggleFavorite(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if tx.calls != 1 {
		t.Errorf("unfavoriting should not open a transaction, got %d calls", tx.calls)
	}
}

func TestPromptsHandler_ToggleFavorite_LimitReached(t *testing.T) {
	repo := NewMockPromptRepository()
	for i := 0; i < models.MaxFavorites; i++ {
		seedPrompt(repo, "pp_fav_"+string(rune('a'+i)), "user_123", true)
	}
	target := seedPrompt(repo, "pp_next", "user_123", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("POST", "/api/v1/prompts/pp_next/favorite", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_next")
	rr := httptest.NewRecorder()

	handler.ToggleFavorite(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
	if target.IsFavorite {
		t.Error("prompt should not be favorited past the limit")
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "too_many_favorites" {
		t.Errorf("expected error 'too_many_favorites', got %q", resp.Error)
	}
}

func TestPromptsHandler_RecordUse(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("POST", "/api/v1/prompts/pp_1/use", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.RecordUse(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp dto.PromptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UsageCount != 1 {
		t.Errorf("expected usage count 1, got %d", resp.UsageCount)
	}
	if repo.prompts["pp_1"].UsageCount != 1 {
		t.Errorf("expected stored usage count 1, got %d", repo.prompts["pp_1"].UsageCount)
	}
}

func TestPromptsHandler_Score(t *testing.T) {
	repo := NewMockPromptRepository()
	p := seedPrompt(repo, "pp_1", "user_123", false)
	p.EnhancedText = "You are an expert. Specifically, format the answer as a numbered list."
	p.UsageCount = 5
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("GET", "/api/v1/prompts/pp_1/score", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.Score(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scoring.Breakdown
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Overall <= 0 || resp.Overall > 1 {
		t.Errorf("overall score %f out of range", resp.Overall)
	}
	if resp.Usage <= 0 {
		t.Error("expected usage sub-score from recorded usage")
	}
	if resp.ClarityWeight != 0.40 {
		t.Errorf("expected clarity weight 0.40, got %f", resp.ClarityWeight)
	}
}

func TestPromptsHandler_CreatedAtFormat(t *testing.T) {
	repo := NewMockPromptRepository()
	seedPrompt(repo, "pp_1", "user_123", false)
	handler := newPromptsHandler(repo)

	req := httptest.NewRequest("GET", "/api/v1/prompts/pp_1", nil)
	req = addUserContext(req, "user_123")
	req = setURLParam(req, "id", "pp_1")
	rr := httptest.NewRecorder()

	handler.Get(rr, req)

	var resp dto.PromptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, resp.CreatedAt); err != nil {
		t.Errorf("created_at is not RFC3339: %q", resp.CreatedAt)
	}
}
