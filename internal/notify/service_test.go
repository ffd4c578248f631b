package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"huskywatch/internal/config"
	"huskywatch/internal/notify"
)

func TestNewServiceReturnsNoopWhenWebhookMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notify.WebhookURL = ""
	svc := notify.NewService(&cfg)
	if err := svc.Send(context.Background(), "Departure Alert\nexample", ""); err != nil {
		t.Fatalf("expected noop sink to return nil, got %v", err)
	}
}

func TestSendPostsJSONPayload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Notify.WebhookURL = srv.URL
	svc := notify.NewService(&cfg)

	message := "Departure Alert\nBob Smith to Example HC\nStatus: Confirmed\n[Player Page](<https://example.com/player/9000/bob-smith>)"
	if err := svc.Send(context.Background(), message, "https://cdn.example.com/photos/9000.jpg"); err != nil {
		t.Fatal(err)
	}

	if gotContentType != "application/json" {
		t.Fatalf("content type: got %q", gotContentType)
	}

	var payload struct {
		Content string `json:"content"`
		Embeds  []struct {
			Image struct {
				URL string `json:"url"`
			} `json:"image"`
		} `json:"embeds"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload.Content != message {
		t.Fatalf("content mismatch: got %q", payload.Content)
	}
	if len(payload.Embeds) != 1 || payload.Embeds[0].Image.URL != "https://cdn.example.com/photos/9000.jpg" {
		t.Fatalf("image embed mismatch: %+v", payload.Embeds)
	}
}

func TestSendOmitsEmbedsWithoutImage(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Notify.WebhookURL = srv.URL
	svc := notify.NewService(&cfg)

	if err := svc.Send(context.Background(), "message", ""); err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(gotBody, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["embeds"]; ok {
		t.Fatalf("embeds key should be omitted: %s", gotBody)
	}
}

func TestSendSurfacesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Notify.WebhookURL = srv.URL
	svc := notify.NewService(&cfg)

	if err := svc.Send(context.Background(), "message", ""); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
