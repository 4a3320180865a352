package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fetcher downloads a feed document from a supplier URL.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// Fetch errors
var (
	ErrInvalidURL   = errors.New("feed: invalid URL")
	ErrFeedTooLarge = errors.New("feed: document exceeds size limit")
)

// HTTPFetcher fetches feed documents over HTTP with a timeout and a body
// size cap.
type HTTPFetcher struct {
	client      *http.Client
	maxBodySize int64
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout and
// body size limit.
func NewHTTPFetcher(timeout time.Duration, maxBodySize int64) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		maxBodySize: maxBodySize,
	}
}

// Fetch downloads the feed. Only http and https URLs are accepted.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	parsed, err := url.ParseRequestURI(feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, feedURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetching %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: fetching %s: unexpected status %d", feedURL, resp.StatusCode)
	}

	// Read one byte past the cap to detect oversized documents.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("feed: reading body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, ErrFeedTooLarge
	}

	return body, nil
}
