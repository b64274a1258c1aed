package dataflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dyike/eodhd-cli/internal/config"
)

// Client handles EODHD API operations
type Client struct {
	baseURL   string
	timeout   time.Duration
	tokens    config.TokenSource
	transport Transport
	logger    *slog.Logger
}

// NewClient creates a new EODHD client. A nil logger discards debug output.
func NewClient(cfg *config.Config, tokens config.TokenSource, transport Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		timeout:   cfg.Timeout,
		tokens:    tokens,
		transport: transport,
		logger:    logger,
	}
}

// Fetch issues the request described by opts and returns the raw body of a
// 2xx response. Errors are *ConfigError, *UsageError or *TransportError.
func (c *Client) Fetch(ctx context.Context, opts Options) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	req, err := BuildRequest(opts, token)
	if err != nil {
		return nil, err
	}
	if opts.Symbol != "" && req.Endpoint.Symbol == SymbolUnused {
		c.logger.Warn("symbol ignored", "endpoint", req.Endpoint.Name, "symbol", opts.Symbol)
	}

	fullURL := req.URL(c.baseURL)
	safeURL := Redact(fullURL, token)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("request", "method", "GET", "url", safeURL, "timeout", c.timeout)
	start := time.Now()

	resp, err := c.transport.Get(ctx, fullURL)
	if err != nil {
		return nil, &TransportError{
			URL:    safeURL,
			Reason: Redact(c.failureReason(ctx, err), token),
			Err:    err,
		}
	}

	c.logger.Debug("response",
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if !resp.IsSuccess() {
		return nil, &TransportError{
			URL:        safeURL,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp.StatusCode, resp.Status),
			Body:       Redact(string(resp.Body), token),
		}
	}

	return resp.Body, nil
}

// failureReason drops the "Get <url>:" prefix net/http adds.
func (c *Client) failureReason(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s", c.timeout)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
