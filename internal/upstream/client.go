// Package upstream is the HTTP client for the third-party bitcoin APIs the
// tools proxy to. Every response is checked for status and decoded into a
// typed record before a handler sees it.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/config"
)

// maxResponseSize caps upstream bodies; every expected payload is tiny.
const maxResponseSize = 1 << 20

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 200

// Client issues GET requests against the configured upstream endpoints.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	priceURL   string
	heightURL  string
	feesURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a Client from upstream config.
func NewClient(cfg config.UpstreamConfig, logger *common.Logger) *Client {
	return &Client{
		priceURL:  cfg.PriceURL,
		heightURL: cfg.HeightURL,
		feesURL:   cfg.FeesURL,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger,
	}
}

// PriceQuote fetches the bitcoin price in the given (lower-case) currency.
func (c *Client) PriceQuote(ctx context.Context, currency string) (float64, error) {
	u, err := url.Parse(c.priceURL)
	if err != nil {
		return 0, fmt.Errorf("invalid price url: %w", err)
	}
	q := u.Query()
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", currency)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return 0, err
	}
	return decodePrice(body, currency)
}

// BlockHeight fetches the current chain tip height.
func (c *Client) BlockHeight(ctx context.Context) (int64, error) {
	body, err := c.get(ctx, c.heightURL)
	if err != nil {
		return 0, err
	}
	return decodeHeight(body)
}

// RecommendedFees fetches the mempool fee tiers.
func (c *Client) RecommendedFees(ctx context.Context) (FeeRecommendation, error) {
	body, err := c.get(ctx, c.feesURL)
	if err != nil {
		return FeeRecommendation{}, err
	}
	return decodeFees(body)
}

// get performs a GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	c.logger.Debug().Str("method", http.MethodGet).Str("url", target).Msg("upstream request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("url", target).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, body)
	}

	return body, nil
}
