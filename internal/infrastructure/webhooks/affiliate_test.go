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
)

var testUtensils = []outbound.Utensil{
	{Name: "Panela", SearchTerm: "panela"},
	{Name: "Faca", SearchTerm: "faca de cozinha"},
}

func affiliateServer(t *testing.T, response string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req affiliateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testUtensils, req.Utensils)

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchLinksDirectObject(t *testing.T) {
	server := affiliateServer(t, `{"utensils": [{"name": "Panela", "affiliate_link": "http://x"}]}`, http.StatusOK)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	assert.Equal(t, []outbound.AffiliateLink{{Name: "Panela", URL: "http://x"}}, links)
}

func TestFetchLinksArrayWrapped(t *testing.T) {
	server := affiliateServer(t, `[{"utensils": [{"name": "Panela", "affiliate_link": "http://x"}]}]`, http.StatusOK)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	require.Len(t, links, 1)
	assert.Equal(t, "http://x", links[0].URL)
}

func TestFetchLinksJSONWrapped(t *testing.T) {
	server := affiliateServer(t, `[{"json": {"utensils": [{"name": "Faca", "affiliate_link": "http://y"}]}}]`, http.StatusOK)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	require.Len(t, links, 1)
	assert.Equal(t, "Faca", links[0].Name)
}

func TestFetchLinksDropsEntriesWithoutLink(t *testing.T) {
	server := affiliateServer(t, `{"utensils": [{"name": "Faca"}]}`, http.StatusOK)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	assert.Empty(t, links)
}

func TestFetchLinksNon2xxReturnsEmpty(t *testing.T) {
	server := affiliateServer(t, `internal error`, http.StatusInternalServerError)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	assert.Empty(t, links)
}

func TestFetchLinksNetworkFailureReturnsEmpty(t *testing.T) {
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), "http://127.0.0.1:1", testUtensils)

	assert.Empty(t, links)
}

func TestFetchLinksGarbageBodyReturnsEmpty(t *testing.T) {
	server := affiliateServer(t, `not json at all`, http.StatusOK)
	client := NewAffiliateClient(time.Second, zap.NewNop())

	links := client.FetchLinks(context.Background(), server.URL, testUtensils)

	assert.Empty(t, links)
}

func TestFetchLinksSkipsWhenUnconfigured(t *testing.T) {
	client := NewAffiliateClient(time.Second, zap.NewNop())

	assert.Empty(t, client.FetchLinks(context.Background(), "", testUtensils))
	assert.Empty(t, client.FetchLinks(context.Background(), "http://example.com", nil))
}
