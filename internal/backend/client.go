package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sozercan/listing-lens/apimodels"
	"github.com/sozercan/listing-lens/internal/config"
)

const maxResponseBytes = 8 << 20

// Client posts queries to the remote analysis API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration

	enableCompression bool
	compressionRatio  float64
}

func NewClient(cfg config.AnalysisConfig) (*Client, error) {
	slog.Info("Creating analysis client", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analysis base URL cannot be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("analysis timeout must be positive, got %s", cfg.Timeout)
	}

	endpoint, err := url.JoinPath(cfg.BaseURL, "api", "analyze")
	if err != nil {
		return nil, fmt.Errorf("invalid analysis base URL %q: %w", cfg.BaseURL, err)
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		timeout:           cfg.Timeout,
		enableCompression: cfg.EnableCompression,
		compressionRatio:  cfg.CompressionRatio,
	}, nil
}

// Endpoint returns the full URL queries are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends exactly one request for query and decodes the reply.
func (c *Client) Analyze(ctx context.Context, query string) (*apimodels.AnalyzeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := apimodels.AnalyzeRequest{
		Query:             query,
		EnableCompression: c.enableCompression,
		CompressionRatio:  c.compressionRatio,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	slog.Debug("Posting analysis request", "endpoint", c.endpoint, "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	result, err := apimodels.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return result, nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// errorMessage pulls a human readable message out of an error body. The
// analysis API uses "message"; "detail" and "error" cover the framework
// defaults it falls back to.
func errorMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
