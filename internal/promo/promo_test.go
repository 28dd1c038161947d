package promo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/config"
)

func newTestService(handler http.Handler) (*Service, func()) {
	srv := httptest.NewServer(handler)
	cfg := &config.Config{AdminAPIBaseURL: srv.URL, AdminProxyURL: srv.URL}
	return NewService(adminapi.NewClient(cfg, adminapi.StaticToken(""))), srv.Close
}

func TestListPassesCategoryThrough(t *testing.T) {
	var gotQuery string
	svc, done := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "p1", "title": "Welcome Bonus"}},
		})
	}))
	defer done()

	promotions, err := svc.List(context.Background(), "welcome offers")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQuery != "category=welcome+offers" {
		t.Errorf("category not escaped/forwarded: %q", gotQuery)
	}
	if len(promotions) != 1 || promotions[0].ID != "p1" {
		t.Errorf("unexpected promotions %+v", promotions)
	}
}

func TestGetRequiresID(t *testing.T) {
	svc, done := newTestService(http.NotFoundHandler())
	defer done()

	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Error("empty id must fail before any network call")
	}
}

func TestClaimSurfacesBackendMessage(t *testing.T) {
	svc, done := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("claim must POST, got %s", r.Method)
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Already claimed"})
	}))
	defer done()

	err := svc.Claim(context.Background(), "p1")
	if err == nil || err.Error() != "Already claimed" {
		t.Errorf("expected backend message, got %v", err)
	}
}
