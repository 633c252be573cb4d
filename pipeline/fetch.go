package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fetcher retrieves the raw body of a page. The pipeline does not care how
// network access or anti-bot bypass happens behind this call.
type Fetcher interface {
	Fetch(pageURL string) (string, error)
}

// HTTPFetcher fetches pages over HTTP with a timeout and custom User-Agent.
// When Endpoint is set, requests are routed through a rendering/anti-bot
// service that takes the target URL as a query parameter.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	Endpoint  string
}

// NewHTTPFetcher creates a fetcher with the given timeout. An empty
// userAgent falls back to the project default; an empty endpoint means
// direct fetching.
func NewHTTPFetcher(timeout time.Duration, userAgent, endpoint string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = "teaserfeed/1.0 (news teaser to RSS pipeline)"
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Endpoint:  endpoint,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(pageURL string) (string, error) {
	target := pageURL
	if f.Endpoint != "" {
		target = f.Endpoint + "?url=" + url.QueryEscape(pageURL)
	}

	req, err := http.NewRequest("GET", target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
