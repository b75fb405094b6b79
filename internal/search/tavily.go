package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/httpclient"
)

const (
	DefaultBaseURL     = "https://api.tavily.com"
	DefaultSearchDepth = "basic"
	DefaultMaxResults  = 3
)

// Result is one search hit. HasContent is false when the upstream item carried
// no content field at all, which is distinct from an empty content string.
type Result struct {
	Title      string
	URL        string
	Content    string
	HasContent bool
	Score      float64
}

// Searcher is the retrieval collaborator used by the pipeline.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

type requestData struct {
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

type responseData struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content *string `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	ResponseTime float64 `json:"response_time"`
}

type errorEnvelope struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}

// Client talks to the Tavily search API.
type Client struct {
	apiKey  string
	baseURL string
	depth   string
	http    *http.Client
}

// NewClient creates a Tavily client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperrors.Config("Tavily API key is missing.", fmt.Errorf("TAVILY_API_KEY is empty"))
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		depth:   DefaultSearchDepth,
	}, nil
}

// SetSearchDepth switches between "basic" and "advanced" searches.
func (c *Client) SetSearchDepth(depth string) {
	if depth = strings.TrimSpace(depth); depth != "" {
		c.depth = depth
	}
}

var _ Searcher = (*Client)(nil)

// Search returns up to maxResults hits in ranking order.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	client := c.http
	if client == nil {
		client = httpclient.GetDefaultClient()
	}

	start := time.Now()
	body, resp, err := httpclient.PostJSON(ctx, client, c.baseURL+"/search", map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, requestData{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: c.depth,
	})
	if err != nil {
		return nil, apperrors.New(
			apperrors.KindTransient,
			"Tavily request failed due to a temporary network/runtime error.",
			fmt.Errorf("tavily request failed: %w", err),
		)
	}
	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		cause := fmt.Errorf("tavily status=%s message=%s", resp.Status, envelope.Detail.Error)
		return nil, apperrors.FromStatus("Tavily", resp.StatusCode, cause)
	}

	var data responseData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.New(
			apperrors.KindValidation,
			"Tavily response format was invalid.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}

	results := make([]Result, 0, len(data.Results))
	for _, item := range data.Results {
		r := Result{
			Title: strings.TrimSpace(item.Title),
			URL:   strings.TrimSpace(item.URL),
			Score: item.Score,
		}
		if item.Content != nil {
			r.HasContent = true
			r.Content = CleanContent(*item.Content)
		}
		results = append(results, r)
	}

	slog.Debug("Tavily search finished", "results", len(results), "took_ms", time.Since(start).Milliseconds())
	return results, nil
}
