// Package upstream talks to the third-party analytics site. Every request,
// on either channel, first acquires a token from the shared rate limiter and
// runs under a bounded timeout.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-champ-stats/internal/config"
	"go-champ-stats/internal/limiter"
	"go-champ-stats/internal/metrics"
)

// Channel names used in logs and metrics
const (
	ChannelPrimary = "primary" // structured JSON query endpoint
	ChannelPage    = "page"    // full HTML page with embedded state
)

// maxBodySize caps response reads; stats payloads are well under this
const maxBodySize = 8 << 20

// Client is the rate-limited HTTP client for the analytics site
type Client struct {
	httpClient *http.Client
	bucket     *limiter.TokenBucket
	baseURL    string
	queryPath  string
	userAgent  string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a client for the configured site
func NewClient(cfg *config.UpstreamConfig, bucket *limiter.TokenBucket, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		bucket:     bucket,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		queryPath:  cfg.QueryEndpoint,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:     logger,
	}
}

// Query issues a structured JSON request against the query endpoint and
// decodes the response into out.
func (c *Client) Query(ctx context.Context, params url.Values, out any) error {
	body, err := c.get(ctx, ChannelPrimary, c.baseURL+c.queryPath, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchPage fetches a human-facing page and returns the raw HTML body, for
// the embedded-state fallback channel.
func (c *Client) FetchPage(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.get(ctx, ChannelPage, c.baseURL+path, params)
}

func (c *Client) get(ctx context.Context, channel, rawURL string, params url.Values) ([]byte, error) {
	if err := c.bucket.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	done := metrics.TimeUpstreamRequest(channel)
	defer done()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(channel, 0)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(channel, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Upstream request completed",
		zap.String("channel", channel),
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}
