package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const serpURL = "https://serpapi.com/search.json"

// OrganicResult is one entry from the search engine results page.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search and returns the organic results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]OrganicResult, error)
}

// SerpClient queries SerpAPI.
type SerpClient struct {
	apiKey string
	client *http.Client
}

func NewSerpClient(apiKey string, timeout time.Duration) *SerpClient {
	return &SerpClient{apiKey: apiKey, client: &http.Client{Timeout: timeout}}
}

func (c *SerpClient) Search(ctx context.Context, query string) ([]OrganicResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var parsed struct {
		OrganicResults []OrganicResult `json:"organic_results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.OrganicResults, nil
}
