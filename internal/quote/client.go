package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches market prices and the USD/MYR rate from the quote API,
// retrying on 429 with exponential backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new quote API client.
func NewClient(baseURL string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// FetchPrices fetches current prices for the given symbols.
// Returns a map of symbol -> price in the instrument's own currency.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	path := "/v1/quotes?symbols=" + url.QueryEscape(strings.Join(symbols, ","))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	// Parse: {"prices":{"VOO":512.3,"BTC":97000.1}}
	var raw struct {
		Prices map[string]decimal.Decimal `json:"prices"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing quotes response: %w", err)
	}
	return raw.Prices, nil
}

// FetchRate fetches the MYR-per-USD exchange rate.
func (c *Client) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	body, err := c.get(ctx, "/v1/fx?pair=USDMYR")
	if err != nil {
		return decimal.Zero, err
	}

	var raw struct {
		Rate decimal.Decimal `json:"rate"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return decimal.Zero, fmt.Errorf("parsing fx response: %w", err)
	}
	return raw.Rate, nil
}

// get performs a GET request with retry on 429.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", reqURL, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, reqURL, string(body))
	}

	return nil, lastErr
}
