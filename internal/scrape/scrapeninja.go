package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	ninjaURL  = "https://scrapeninja.p.rapidapi.com/scrape"
	ninjaHost = "scrapeninja.p.rapidapi.com"
)

// Fetcher fetches the raw HTML of a product page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// NinjaClient fetches pages through the ScrapeNinja API on RapidAPI.
type NinjaClient struct {
	apiKey string
	client *http.Client
}

func NewNinjaClient(apiKey string) *NinjaClient {
	// No client-level timeout: each call is bounded by its context.
	return &NinjaClient{apiKey: apiKey, client: &http.Client{}}
}

func (c *NinjaClient) Fetch(ctx context.Context, url string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ninjaURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", ninjaHost)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape failed: status %d", resp.StatusCode)
	}

	var parsed struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return parsed.HTML, nil
}
