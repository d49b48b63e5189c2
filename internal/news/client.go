package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"forestguard/internal/domain"
)

// Source fetches the raw wildfire article feed from an upstream provider.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Article, error)
}

const (
	defaultBaseURL = "https://newsapi.org/v2"

	// wildfireQuery matches any of the three wildfire phrases the feed covers.
	wildfireQuery = `"forest fire" OR wildfire OR bushfire`

	// excludedDomains drops entertainment and lifestyle outlets at the source.
	excludedDomains = "imdb.com,hollywoodreporter.com,screenrant.com,deadline.com,healthline.com"

	pageSize = 30
)

// Client talks to the News API "everything" endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// NewClient creates a news client with the given API key and request timeout.
func NewClient(apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// Fetch requests the most recent wildfire articles. A response whose status
// is not "ok" or that carries no articles degrades to an empty list rather
// than an error; only transport and decode failures propagate.
func (c *Client) Fetch(ctx context.Context) ([]domain.Article, error) {
	params := url.Values{
		"q":              {wildfireQuery},
		"sortBy":         {"publishedAt"},
		"language":       {"en"},
		"pageSize":       {fmt.Sprintf("%d", pageSize)},
		"excludeDomains": {excludedDomains},
		"apiKey":         {c.apiKey},
	}
	fullURL := c.baseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("news API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Status != "ok" {
		c.logger.Warnf("news API returned status %q, serving empty feed", apiResp.Status)
		return nil, nil
	}

	articles := make([]domain.Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		articles = append(articles, domain.Article{
			Source:      a.Source.Name,
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}

// News API response types.

type response struct {
	Status   string       `json:"status"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
}

type apiSource struct {
	Name string `json:"name"`
}
