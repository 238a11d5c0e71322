package webhooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

func buildPayload() outbound.SocialPayload {
	var p outbound.SocialPayload
	p.Title.Rendered = "Bolo de Cenoura"
	p.GUID.Rendered = "https://receitario.example/receitas/bolo-de-cenoura"
	p.Link = "https://receitario.example/receitas/bolo-de-cenoura"
	p.Output.Slug = "bolo-de-cenoura"
	p.Output.InstagramPost = "Legenda pronta #receita"
	p.Output.Title = "Bolo de Cenoura"
	return p
}

func TestPublishSendsExactPayloadShape(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewSocialPublisher(time.Second, zap.NewNop())
	err := publisher.Publish(context.Background(), server.URL, buildPayload())
	require.NoError(t, err)

	title := received["title"].(map[string]any)
	assert.Equal(t, "Bolo de Cenoura", title["rendered"])
	guid := received["guid"].(map[string]any)
	assert.Equal(t, "https://receitario.example/receitas/bolo-de-cenoura", guid["rendered"])
	output := received["output"].(map[string]any)
	assert.Equal(t, "bolo-de-cenoura", output["slug"])
	assert.Equal(t, "Legenda pronta #receita", output["instagramPost"])
	assert.Equal(t, "Bolo de Cenoura", output["title"])
}

func TestPublishNon2xxCarriesStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewSocialPublisher(time.Second, zap.NewNop())
	err := publisher.Publish(context.Background(), server.URL, buildPayload())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePublishFailed))
	assert.Contains(t, err.Error(), "502")
}

func TestPublishWithoutWebhookIsExplicit(t *testing.T) {
	publisher := NewSocialPublisher(time.Second, zap.NewNop())
	err := publisher.Publish(context.Background(), "", buildPayload())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeWebhookNotConfigured))
}

func TestPublishNetworkFailureSurfaces(t *testing.T) {
	publisher := NewSocialPublisher(time.Second, zap.NewNop())
	err := publisher.Publish(context.Background(), "http://127.0.0.1:1", buildPayload())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePublishFailed))
}
