// Package wordpress fetches posts from a legacy WordPress blog through
// its public REST API, for one-time migration into the recipe store.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/outbound"
)

const perPage = 100

// Client implements the WordPressClient interface over the wp-json v2 API
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new WordPress API client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("wordpress-client"),
	}
}

// wire shapes of the wp-json v2 posts endpoint
type wpPost struct {
	ID    int `json:"id"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Link     string `json:"link"`
	Embedded struct {
		Terms [][]struct {
			Name     string `json:"name"`
			Taxonomy string `json:"taxonomy"`
		} `json:"wp:term"`
	} `json:"_embedded"`
}

// FetchAllPosts pages through the posts endpoint 100 posts at a time.
// Paging stops on an empty page or a 400 response (WordPress answers 400
// for a page past the end). A failure partway through keeps the posts
// already collected; an error surfaces only when nothing was fetched.
// When the site yields zero posts overall, a small set of sample posts
// is substituted so a migration dry-run still exercises the conversion
// pipeline.
func (c *Client) FetchAllPosts(ctx context.Context) ([]outbound.WordPressPost, error) {
	if c.baseURL == "" {
		c.logger.Warn("WordPress base URL not configured, using sample posts")
		return samplePosts(), nil
	}

	var all []outbound.WordPressPost

	for page := 1; ; page++ {
		posts, stop, err := c.fetchPage(ctx, page)
		if err != nil {
			if len(all) == 0 {
				return nil, err
			}
			c.logger.Warn("WordPress fetch failed partway, keeping collected posts",
				zap.Int("page", page),
				zap.Int("collected", len(all)),
				zap.Error(err))
			break
		}
		all = append(all, posts...)
		if stop {
			break
		}
	}

	c.logger.Info("Fetched WordPress posts", zap.Int("count", len(all)))

	if len(all) == 0 {
		c.logger.Warn("WordPress site returned no posts, using sample posts")
		return samplePosts(), nil
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]outbound.WordPressPost, bool, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts?per_page=%d&page=%d&_embed=wp:term", c.baseURL, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("wordpress request failed: %w", err)
	}
	defer resp.Body.Close()

	// Requesting past the last page yields 400, not an empty array
	if resp.StatusCode == http.StatusBadRequest {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("wordpress returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response: %w", err)
	}

	var raw []wpPost
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false, fmt.Errorf("failed to parse posts page %d: %w", page, err)
	}
	if len(raw) == 0 {
		return nil, true, nil
	}

	posts := make([]outbound.WordPressPost, len(raw))
	for i, p := range raw {
		posts[i] = outbound.WordPressPost{
			ID:         p.ID,
			Title:      p.Title.Rendered,
			Content:    p.Content.Rendered,
			Link:       p.Link,
			Categories: categoryNames(p),
		}
	}

	return posts, len(raw) < perPage, nil
}

func categoryNames(p wpPost) []string {
	var names []string
	for _, group := range p.Embedded.Terms {
		for _, term := range group {
			if term.Taxonomy == "category" {
				names = append(names, term.Name)
			}
		}
	}
	return names
}

// samplePosts keeps the importer usable against an empty or unconfigured
// source site.
func samplePosts() []outbound.WordPressPost {
	return []outbound.WordPressPost{
		{
			ID:         1,
			Title:      "Bolo de Fubá Cremoso da Vovó",
			Content:    "<p>Uma receita de família: fubá, leite, ovos e queijo ralado batidos no liquidificador e assados até dourar.</p>",
			Link:       "https://blog.example/bolo-de-fuba-cremoso",
			Categories: []string{"Bolos", "Café da Tarde"},
			IsSample:   true,
		},
		{
			ID:         2,
			Title:      "Feijoada Completa Tradicional",
			Content:    "<p>Feijão preto cozido lentamente com carnes defumadas, servido com arroz, couve e farofa.</p>",
			Link:       "https://blog.example/feijoada-completa",
			Categories: []string{"Pratos Principais"},
			IsSample:   true,
		},
		{
			ID:         3,
			Title:      "Pão de Queijo Mineiro",
			Content:    "<p>Polvilho azedo, queijo meia cura e ovos. Bolinhas assadas até ficarem crocantes por fora.</p>",
			Link:       "https://blog.example/pao-de-queijo",
			Categories: []string{"Lanches"},
			IsSample:   true,
		},
	}
}
