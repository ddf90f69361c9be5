package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrHTTPStatus is returned when a feed endpoint answers with a non-200 status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// DefaultTimeout bounds a single feed fetch when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client fetches raw GTFS-RT protobuf bytes over HTTP or from local files.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient creates a client whose every fetch is bounded by timeout.
// A non-empty apiKey is sent in the x-api-key header.
func NewClient(timeout time.Duration, apiKey string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
	}
}

// Fetch fetches a single feed from a URL or file path and returns raw protobuf bytes.
// Locations without an http:// or https:// scheme are read from disk; a file:// prefix is stripped.
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, errors.New("empty feed location")
	}

	if !isHTTP(urlOrPath) {
		b, err := os.ReadFile(strings.TrimPrefix(urlOrPath, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", urlOrPath, err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlOrPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", urlOrPath, err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrHTTPStatus, resp.StatusCode, urlOrPath)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body from %s: %w", urlOrPath, err)
	}
	return b, nil
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
