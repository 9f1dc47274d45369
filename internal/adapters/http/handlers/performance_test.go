package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/http/dto"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/domain/models"
	"github.com/promptpilot/promptpilot/internal/scoring"
)

func newPerformanceHandler() (*PerformanceHandler, *cache.Cache) {
	c := cache.New()
	return NewPerformanceHandler(c, scoring.NewScorer(scoring.DefaultConfig())), c
}

func TestPerformanceHandler_Stats(t *testing.T) {
	handler, c := newPerformanceHandler()

	key := cache.Key("test prompt", []string{"role_prompting"}, models.ModeRewrite)
	c.Put(key, &models.EnhancementResult{EnhancedText: "enhanced"})
	c.Get(key)
	c.Get("missing:key")
	c.RecordLatency(150 * time.Millisecond)

	req := httptest.NewRequest("GET", "/api/v1/performance", nil)
	rr := httptest.NewRecorder()

	handler.Stats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp performanceResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Cache.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", resp.Cache.Hits)
	}
	if resp.Cache.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", resp.Cache.Misses)
	}
	if resp.Latency.Count != 1 {
		t.Errorf("expected 1 latency sample, got %d", resp.Latency.Count)
	}
}

func TestPerformanceHandler_Suggestions(t *testing.T) {
	handler, _ := newPerformanceHandler()

	text := url.QueryEscape("Please write something")
	req := httptest.NewRequest("GET", "/api/v1/suggestions?text="+text, nil)
	rr := httptest.NewRecorder()

	handler.Suggestions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp dto.SuggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected suggestions for a weak prompt")
	}
}

func TestPerformanceHandler_Suggestions_EmptyText(t *testing.T) {
	handler, _ := newPerformanceHandler()

	req := httptest.NewRequest("GET", "/api/v1/suggestions", nil)
	rr := httptest.NewRecorder()

	handler.Suggestions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp dto.SuggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "Add content to your prompt" {
		t.Errorf("unexpected suggestions for empty text: %v", resp.Suggestions)
	}
}
