package gemini

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

	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/ports/outbound"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.AIConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		TextModel:      "gemini-test",
		ImageModel:     "imagen-test",
		MaxTokens:      1024,
		Temperature:    0.7,
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()), server
}

func textResponse(text string) []byte {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

const validRecipeJSON = `{
	"title": "Bolo de Cenoura",
	"slug": "bolo-de-cenoura",
	"description": "Um classico brasileiro",
	"prepTime": "20 minutos",
	"cookTime": "40 minutos",
	"totalTime": "1 hora",
	"ingredients": [{"item": "cenoura", "amount": "3 unidades"}],
	"steps": ["Bata tudo no liquidificador", "Asse por 40 minutos"],
	"nutrition": {"calories": 320, "protein": "5g", "carbs": "48g", "fat": "12g"},
	"tags": ["Bolos", "Lanche da Tarde"],
	"visualDescription": "A carrot cake with chocolate glaze",
	"utensils": ["liquidificador", "forma"]
}`

func TestGenerateRecipeFromScratch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		w.Write(textResponse(validRecipeJSON))
	}))

	recipe, err := client.GenerateRecipeFromScratch(context.Background(), "bolo de cenoura")
	require.NoError(t, err)

	assert.Equal(t, "Bolo de Cenoura", recipe.Title)
	assert.Len(t, recipe.Ingredients, 1)
	assert.Len(t, recipe.Steps, 2)
	assert.Equal(t, []string{"liquidificador", "forma"}, recipe.Utensils)
	assert.Equal(t, "A carrot cake with chocolate glaze", recipe.VisualDescription)
}

func TestGenerateRecipeStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validRecipeJSON + "\n```"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(fenced))
	}))

	recipe, err := client.GenerateRecipeFromScratch(context.Background(), "bolo")
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Cenoura", recipe.Title)
}

func TestGenerateRecipeRejectsIncompleteResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`{"title": "Sem Passos", "ingredients": [{"item": "x", "amount": "1"}], "steps": []}`))
	}))

	_, err := client.GenerateRecipeFromScratch(context.Background(), "algo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete recipe")
}

func TestGenerateRecipePropagatesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": 500, "status": "INTERNAL", "message": "backend overloaded"}}`))
	}))

	_, err := client.GenerateRecipeFromScratch(context.Background(), "bolo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend overloaded")
}

func TestStartVideoJobModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 404, "status": "NOT_FOUND", "message": "model veo-x is not found"}}`))
	}))

	_, err := client.StartVideoJob(context.Background(), "a cooking video", "veo-x")
	assert.ErrorIs(t, err, outbound.ErrModelNotFound)
}

func TestPollVideoJob(t *testing.T) {
	done := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !done {
			done = true
			w.Write([]byte(`{"name": "operations/abc", "done": false}`))
			return
		}
		w.Write([]byte(`{
			"name": "operations/abc",
			"done": true,
			"response": {"generateVideoResponse": {"generatedSamples": [{"video": {"uri": "https://video.example/v.mp4"}}]}}
		}`))
	}))

	op := &outbound.VideoOperation{ID: "operations/abc"}

	op, err := client.PollVideoJob(context.Background(), op)
	require.NoError(t, err)
	assert.False(t, op.Done)

	op, err = client.PollVideoJob(context.Background(), op)
	require.NoError(t, err)
	assert.True(t, op.Done)
	assert.Equal(t, "https://video.example/v.mp4", op.VideoURI)
}

func TestGenerateStoryRequiresFiveSlides(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`{"title": "Story", "slides": [{"type": "cover", "text": "t", "visualPrompt": "v"}]}`))
	}))

	_, err := client.GenerateStory(context.Background(), "Bolo", "desc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 5")
}

func TestIdentifyUtensils(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`{"utensils": [{"name": "Panela de pressao", "search_term": "panela pressao"}]}`))
	}))

	utensils, err := client.IdentifyUtensils(context.Background(), "Feijoada Completa")
	require.NoError(t, err)
	require.Len(t, utensils, 1)
	assert.Equal(t, "Panela de pressao", utensils[0].Name)
	assert.Equal(t, "panela pressao", utensils[0].SearchTerm)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around object", `Here is the JSON: {"a": 1} hope it helps`, `{"a": 1}`},
		{"array", `[{"a": 1}]`, `[{"a": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}
