// Package gemini provides Google Gemini integration for content generation
// Implements the AIProvider interface over the REST API
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/ports/outbound"
)

// Client implements the AIProvider interface using the Gemini REST API
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	client     *http.Client
	logger     *zap.Logger
	maxTokens  int
	temp       float64
}

// NewClient creates a new Gemini client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	logger.Info("Gemini client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("text_model", cfg.TextModel),
		zap.String("image_model", cfg.ImageModel),
		zap.Duration("timeout", cfg.RequestTimeout))

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger:    logger.Named("gemini-client"),
		maxTokens: cfg.MaxTokens,
		temp:      cfg.Temperature,
	}
}

// Gemini API structures

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters map[string]any    `json:"parameters,omitempty"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

type operationResponse struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateRecipeFromScratch generates a full recipe for a dish name
func (c *Client) GenerateRecipeFromScratch(ctx context.Context, dishName string) (*outbound.GeneratedRecipe, error) {
	prompt := fmt.Sprintf("Crie uma receita completa e detalhada para: %s", dishName)
	return c.generateRecipe(ctx, prompt)
}

// GenerateRecipeFromIngredients generates a recipe using the given ingredients
func (c *Client) GenerateRecipeFromIngredients(ctx context.Context, items []string) (*outbound.GeneratedRecipe, error) {
	prompt := fmt.Sprintf(
		"Crie uma receita completa que use principalmente estes ingredientes: %s. Pode assumir itens basicos de despensa (sal, oleo, agua).",
		strings.Join(items, ", "))
	return c.generateRecipe(ctx, prompt)
}

// ConvertWordPressPost converts a legacy blog post into the recipe schema
func (c *Client) ConvertWordPressPost(ctx context.Context, html, title string, categories []string) (*outbound.GeneratedRecipe, error) {
	prompt := fmt.Sprintf(
		"Converta este post de blog em uma receita estruturada. Preserve o conteudo original sempre que possivel; complete apenas os campos ausentes.\n\nTitulo: %s\nCategorias: %s\n\nConteudo HTML:\n%s",
		title, strings.Join(categories, ", "), html)
	return c.generateRecipe(ctx, prompt)
}

// RemixRecipe derives a variation of an existing recipe
func (c *Client) RemixRecipe(ctx context.Context, original outbound.RemixSource, modification string) (*outbound.GeneratedRecipe, error) {
	src, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal remix source: %w", err)
	}
	prompt := fmt.Sprintf(
		"Adapte a receita abaixo aplicando esta modificacao: %q. Mantenha a estrutura e o tom, mudando apenas o necessario.\n\nReceita original:\n%s",
		modification, string(src))
	return c.generateRecipe(ctx, prompt)
}

func (c *Client) generateRecipe(ctx context.Context, prompt string) (*outbound.GeneratedRecipe, error) {
	raw, err := c.generateJSON(ctx, recipeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var recipe outbound.GeneratedRecipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		c.logger.Error("Failed to parse recipe response",
			zap.Error(err),
			zap.String("response", truncate(raw, 500)))
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}

	if recipe.Title == "" || len(recipe.Ingredients) == 0 || len(recipe.Steps) == 0 {
		return nil, fmt.Errorf("incomplete recipe response: missing title, ingredients or steps")
	}

	c.logger.Info("Recipe generated",
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("steps", len(recipe.Steps)))

	return &recipe, nil
}

// GenerateImage renders a food photograph for the given visual description.
// The caller owns the fallback when this fails.
func (c *Client) GenerateImage(ctx context.Context, visualDescription string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/models/%s:predict", c.baseURL, c.imageModel)

	reqBody := predictRequest{
		Instances: []predictInstance{{
			Prompt: "Professional food photography, appetizing, natural light, shallow depth of field. " + visualDescription,
		}},
		Parameters: map[string]any{
			"sampleCount": 1,
			"aspectRatio": "16:9",
		},
	}

	body, err := c.post(ctx, endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal image response: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("image response contained no predictions")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	return data, nil
}

// GenerateStory generates a five-slide web story for a recipe
func (c *Client) GenerateStory(ctx context.Context, recipeTitle, description string) (*outbound.GeneratedStory, error) {
	prompt := fmt.Sprintf("Crie um web story para a receita %q. Descricao: %s", recipeTitle, description)

	raw, err := c.generateJSON(ctx, storySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var story outbound.GeneratedStory
	if err := json.Unmarshal([]byte(raw), &story); err != nil {
		return nil, fmt.Errorf("failed to parse story response: %w", err)
	}
	if len(story.Slides) != 5 {
		return nil, fmt.Errorf("story response has %d slides, want 5", len(story.Slides))
	}

	return &story, nil
}

// GenerateReelScript writes a short narration script for a recipe reel
func (c *Client) GenerateReelScript(ctx context.Context, recipeTitle string, steps []string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva um roteiro de narracao de 30 segundos para um reel sobre a receita %q. Passos: %s. Responda apenas com o texto do roteiro, sem marcacoes.",
		recipeTitle, strings.Join(steps, " | "))

	return c.generateText(ctx, "", prompt)
}

// GenerateMemeCaption writes a short humorous caption about a food topic
func (c *Client) GenerateMemeCaption(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva uma legenda de meme curta e engracada sobre: %s. Maximo duas frases. Responda apenas com a legenda.", topic)

	return c.generateText(ctx, "", prompt)
}

// StartVideoJob kicks off a long-running video generation job
func (c *Client) StartVideoJob(ctx context.Context, prompt, model string) (*outbound.VideoOperation, error) {
	endpoint := fmt.Sprintf("%s/models/%s:predictLongRunning", c.baseURL, model)

	reqBody := predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
	}

	body, err := c.post(ctx, endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	var op operationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operation: %w", err)
	}
	if op.Name == "" {
		return nil, fmt.Errorf("video job response missing operation name")
	}

	c.logger.Info("Video job started", zap.String("operation", op.Name), zap.String("model", model))

	return &outbound.VideoOperation{ID: op.Name}, nil
}

// PollVideoJob fetches the current state of a video operation
func (c *Client) PollVideoJob(ctx context.Context, op *outbound.VideoOperation) (*outbound.VideoOperation, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, op.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	var opResp operationResponse
	if err := json.Unmarshal(body, &opResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operation: %w", err)
	}
	if opResp.Error != nil {
		return nil, fmt.Errorf("video job failed: %s", opResp.Error.Message)
	}

	out := &outbound.VideoOperation{ID: op.ID, Done: opResp.Done}
	if opResp.Done && opResp.Response != nil {
		samples := opResp.Response.GenerateVideoResponse.GeneratedSamples
		if len(samples) == 0 {
			return nil, fmt.Errorf("video job completed without samples")
		}
		out.VideoURI = samples[0].Video.URI
	}

	return out, nil
}

// AnalyzeFoodImage runs a multimodal nutrition analysis on a photo
func (c *Client) AnalyzeFoodImage(ctx context.Context, base64Image string) (*outbound.NutritionAnalysis, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.textModel)

	reqBody := generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64Image}},
				{Text: analysisPrompt},
			},
		}},
		GenerationConfig: &generationConfig{
			Temperature:      0.2,
			MaxOutputTokens:  c.maxTokens,
			ResponseMimeType: "application/json",
		},
	}

	body, err := c.post(ctx, endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	raw, err := extractText(body)
	if err != nil {
		return nil, err
	}

	var analysis outbound.NutritionAnalysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &analysis, nil
}

// IdentifyUtensils derives the kitchen tools implied by a dish
func (c *Client) IdentifyUtensils(ctx context.Context, dish string) ([]outbound.Utensil, error) {
	prompt := fmt.Sprintf(
		"Liste os utensilios de cozinha necessarios para preparar: %s\n\nResponda apenas com JSON: {\"utensils\":[{\"name\":\"...\",\"search_term\":\"...\"}]}. Maximo 5 utensilios, apenas itens realmente necessarios.",
		dish)

	raw, err := c.generateJSON(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Utensils []outbound.Utensil `json:"utensils"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse utensil response: %w", err)
	}

	return resp.Utensils, nil
}

// generateJSON runs a text completion in JSON mode and returns the cleaned
// JSON payload
func (c *Client) generateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	raw, err := c.complete(ctx, systemPrompt, userPrompt, "application/json")
	if err != nil {
		return "", err
	}
	return extractJSON(raw), nil
}

// generateText runs a plain text completion
func (c *Client) generateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	raw, err := c.complete(ctx, systemPrompt, userPrompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt, mimeType string) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.textModel)

	reqBody := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: userPrompt}},
		}},
		GenerationConfig: &generationConfig{
			Temperature:      c.temp,
			MaxOutputTokens:  c.maxTokens,
			ResponseMimeType: mimeType,
		},
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	body, err := c.post(ctx, endpoint, reqBody)
	if err != nil {
		return "", err
	}

	return extractText(body)
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody any) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	return body, nil
}

// statusError maps an error response to a Go error, detecting unknown
// model ids so the reel pipeline can retry on its fallback model
func (c *Client) statusError(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		if status == http.StatusNotFound || apiErr.Error.Status == "NOT_FOUND" {
			c.logger.Warn("Model not found", zap.String("message", apiErr.Error.Message))
			return outbound.ErrModelNotFound
		}
		return fmt.Errorf("API error %d: %s", status, apiErr.Error.Message)
	}
	if status == http.StatusNotFound {
		return outbound.ErrModelNotFound
	}
	return fmt.Errorf("API error %d: %s", status, truncate(string(body), 200))
}

// extractText pulls the first candidate's text out of a generateContent
// response
func extractText(body []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// extractJSON cleans model output down to the JSON payload. Models
// occasionally wrap JSON in markdown fences or prose despite JSON mode.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimPrefix(response, "```")
		if idx := strings.LastIndex(response, "```"); idx >= 0 {
			response = response[:idx]
		}
		response = strings.TrimSpace(response)
	}

	start := strings.IndexAny(response, "{[")
	if start == -1 {
		return response
	}
	var end int
	if response[start] == '{' {
		end = strings.LastIndex(response, "}")
	} else {
		end = strings.LastIndex(response, "]")
	}
	if end <= start {
		return response
	}
	return response[start : end+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

const recipeSystemPrompt = `Voce e um chef e redator de receitas experiente. Responda SEMPRE com um unico objeto JSON valido neste formato exato:
{
  "title": "Nome da Receita",
  "slug": "nome-da-receita",
  "description": "Descricao curta e apetitosa",
  "story": "Um paragrafo de historia ou contexto da receita",
  "prepTime": "15 minutos",
  "cookTime": "30 minutos",
  "totalTime": "45 minutos",
  "ingredients": [{"item": "farinha de trigo", "amount": "2 xicaras", "note": "peneirada"}],
  "steps": ["Passo 1 detalhado", "Passo 2 detalhado"],
  "nutrition": {"calories": 350, "protein": "20g", "carbs": "45g", "fat": "12g"},
  "tags": ["tag1", "tag2"],
  "tips": "Dicas praticas de preparo",
  "pairing": "Sugestao de acompanhamento",
  "faq": [{"question": "Pergunta comum", "answer": "Resposta"}],
  "visualDescription": "English description of the finished dish for image generation",
  "utensils": ["panela", "batedeira"]
}

Regras:
- ingredients e steps nunca podem ser vazios
- visualDescription deve ser em ingles e descrever apenas o prato pronto
- Nenhum texto fora do objeto JSON`

const storySystemPrompt = `Voce cria web stories de receitas. Responda SEMPRE com um unico objeto JSON valido:
{
  "title": "Titulo do story",
  "slides": [
    {"type": "cover", "layout": "fill", "text": "Titulo", "subtext": "Chamada", "visualPrompt": "English visual description"},
    {"type": "content", "layout": "thirds", "text": "...", "subtext": "...", "visualPrompt": "..."}
  ]
}

Regras:
- Exatamente 5 slides: 1 capa, 3 de conteudo, 1 de fechamento com chamada para o site
- visualPrompt em ingles, um por slide
- Nenhum texto fora do objeto JSON`

const analysisPrompt = `Analise esta foto de comida. Responda apenas com JSON:
{"dishName": "...", "calories": 0, "protein": "...", "carbs": "...", "fat": "...", "healthNotes": "..."}
Estime os valores para uma porcao. healthNotes em uma frase.`
