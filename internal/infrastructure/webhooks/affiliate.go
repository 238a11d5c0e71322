// Package webhooks provides clients for the external automation webhooks:
// affiliate link resolution and social/meme publishing.
package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/outbound"
)

// AffiliateClient resolves utensil names into affiliate product links.
// The whole flow is best-effort: any failure yields an empty list.
type AffiliateClient struct {
	client *http.Client
	logger *zap.Logger
}

// NewAffiliateClient creates a new affiliate webhook client
func NewAffiliateClient(timeout time.Duration, logger *zap.Logger) *AffiliateClient {
	return &AffiliateClient{
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("affiliate-client"),
	}
}

type affiliateRequest struct {
	Utensils []outbound.Utensil `json:"utensils"`
}

// affiliateEntry tolerates the webhook's loose response schema. Entries
// without an affiliate_link are dropped.
type affiliateEntry struct {
	Name          string `json:"name"`
	AffiliateLink string `json:"affiliate_link"`
}

type affiliateEnvelope struct {
	Utensils []affiliateEntry `json:"utensils"`
	JSON     *struct {
		Utensils []affiliateEntry `json:"utensils"`
	} `json:"json"`
}

// FetchLinks posts the utensil list to the webhook and parses whatever
// shape comes back. It never returns an error; empty input, network
// failures, bad status codes and unparseable bodies all produce an
// empty slice.
func (c *AffiliateClient) FetchLinks(ctx context.Context, webhookURL string, utensils []outbound.Utensil) []outbound.AffiliateLink {
	if webhookURL == "" || len(utensils) == 0 {
		return nil
	}

	body, err := json.Marshal(affiliateRequest{Utensils: utensils})
	if err != nil {
		c.logger.Warn("Failed to marshal affiliate request", zap.Error(err))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("Failed to create affiliate request", zap.Error(err))
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Affiliate webhook unreachable", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Affiliate webhook returned non-2xx", zap.Int("status", resp.StatusCode))
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read affiliate response", zap.Error(err))
		return nil
	}

	entries := parseAffiliateResponse(raw)

	links := make([]outbound.AffiliateLink, 0, len(entries))
	for _, e := range entries {
		if e.AffiliateLink == "" {
			continue
		}
		links = append(links, outbound.AffiliateLink{Name: e.Name, URL: e.AffiliateLink})
	}

	c.logger.Info("Affiliate links resolved",
		zap.Int("requested", len(utensils)),
		zap.Int("resolved", len(links)))

	return links
}

// parseAffiliateResponse accepts the three shapes the webhook is known to
// emit: {utensils:[...]}, [{utensils:[...]}] and [{json:{utensils:[...]}}].
func parseAffiliateResponse(raw []byte) []affiliateEntry {
	var direct affiliateEnvelope
	if err := json.Unmarshal(raw, &direct); err == nil && len(direct.Utensils) > 0 {
		return direct.Utensils
	}

	var wrapped []affiliateEnvelope
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped) > 0 {
		first := wrapped[0]
		if len(first.Utensils) > 0 {
			return first.Utensils
		}
		if first.JSON != nil {
			return first.JSON.Utensils
		}
	}

	return nil
}
