package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// SocialPublisher posts recipe and meme payloads to the automation
// webhook. Unlike affiliate enrichment, failures here surface to the
// caller.
type SocialPublisher struct {
	client *http.Client
	logger *zap.Logger
}

// NewSocialPublisher creates a new social webhook publisher
func NewSocialPublisher(timeout time.Duration, logger *zap.Logger) *SocialPublisher {
	return &SocialPublisher{
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("social-publisher"),
	}
}

// Publish posts the payload and returns an error carrying the response
// status text on non-2xx.
func (p *SocialPublisher) Publish(ctx context.Context, webhookURL string, payload outbound.SocialPayload) error {
	if webhookURL == "" {
		return apperrors.NewWebhookNotConfiguredError("social webhook URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewPublishError("failed to encode payload").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewPublishError("failed to create request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return apperrors.NewPublishError("webhook unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Error("Social webhook rejected payload",
			zap.Int("status", resp.StatusCode),
			zap.String("title", payload.Output.Title))
		return apperrors.NewPublishError("webhook returned " + resp.Status)
	}

	p.logger.Info("Published to social webhook", zap.String("title", payload.Output.Title))
	return nil
}
