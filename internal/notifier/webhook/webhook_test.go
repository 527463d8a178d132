package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
	"github.com/newthinker/recruitdash/internal/notifier"
)

func TestWebhook_ImplementsNotifier(t *testing.T) {
	var _ notifier.Notifier = (*Webhook)(nil)
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New("", nil, 0); err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestWebhook_Notify(t *testing.T) {
	var payload map[string]any
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w, err := New(server.URL, map[string]string{"Authorization": "Bearer t"}, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	err = w.Notify(context.Background(), notifier.Event{
		Dataset: core.KindRadar,
		From:    "ready",
		To:      "error",
		Error:   "[FETCH_FAILED] dataset fetch failed",
		At:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload["dataset"] != "radar" || payload["to"] != "error" {
		t.Errorf("unexpected payload %v", payload)
	}
	if payload["at"] != "2024-03-01T09:00:00Z" {
		t.Errorf("unexpected timestamp %v", payload["at"])
	}
	if auth != "Bearer t" {
		t.Errorf("custom header not sent, got %q", auth)
	}
}

func TestWebhook_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w, _ := New(server.URL, nil, 0)
	if err := w.Notify(context.Background(), notifier.Event{Dataset: core.KindBar}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestWebhook_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, _ := New(server.URL, nil, 0)
	if err := w.Notify(ctx, notifier.Event{Dataset: core.KindBar}); err == nil {
		t.Error("expected error for canceled context")
	}
}
