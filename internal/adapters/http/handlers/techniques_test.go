package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptpilot/promptpilot/internal/techniques"
)

func TestTechniquesHandler_List(t *testing.T) {
	handler := NewTechniquesHandler()

	req := httptest.NewRequest("GET", "/api/v1/techniques", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp techniques.CatalogInfo
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Techniques) != 25 {
		t.Errorf("expected 25 techniques, got %d", len(resp.Techniques))
	}
	if len(resp.Presets) == 0 {
		t.Error("expected presets in catalog info")
	}
}
