package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"huskywatch/internal/config"
)

const userAgent = "HuskyWatch/0.1.0"

// Service defines the notification surface exposed to the engine.
type Service interface {
	// Send delivers one alert message, optionally with an embedded image.
	Send(ctx context.Context, message, imageURL string) error
	// Test delivers a canned message to verify webhook wiring.
	Test(ctx context.Context) error
}

// NewService builds a webhook-backed notification service. When no webhook URL
// is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	webhookURL := strings.TrimSpace(cfg.Notify.WebhookURL)
	if webhookURL == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notify.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &webhookService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type webhookService struct {
	webhookURL string
	client     *http.Client
}

type webhookPayload struct {
	Content string  `json:"content"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Image embedImage `json:"image"`
}

type embedImage struct {
	URL string `json:"url"`
}

func (s *webhookService) Send(ctx context.Context, message, imageURL string) error {
	payload := webhookPayload{Content: message}
	if imageURL = strings.TrimSpace(imageURL); imageURL != "" {
		payload.Embeds = []embed{{Image: embedImage{URL: imageURL}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *webhookService) Test(ctx context.Context) error {
	return s.Send(ctx, "HuskyWatch notification test", "")
}

type noopService struct{}

func (noopService) Send(context.Context, string, string) error { return nil }
func (noopService) Test(context.Context) error                 { return nil }
