// Package fundamentals is the reference FundamentalsClient implementation:
// a rate-limited HTTP client with exponential-backoff retries. Retry policy
// lives here, on the collaborator side; the engine itself never retries.
package fundamentals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/quantora/analyzer/models"
)

// Client fetches fundamental metrics over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a fundamentals client with rate limiting and retries.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		maxElapsed: opts.MaxRetryTimeout,
		logger:     log.With().Str("component", "fundamentals_client").Logger(),
	}
}

type fundamentalsResponse struct {
	Metrics map[string]float64 `json:"metrics"`
	Status  string             `json:"status"`
	Message string             `json:"message"`
}

// FetchFundamentals implements models.FundamentalsClient.
func (c *Client) FetchFundamentals(ctx context.Context, symbol, market string) (*models.Fundamentals, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/fundamentals?symbol=%s&market=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(market), url.QueryEscape(c.apiKey))
	c.logger.Debug().Str("symbol", symbol).Str("market", market).Msg("Fetching fundamentals")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data fundamentalsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if data.Status == "error" {
		return nil, fmt.Errorf("fundamentals API error: %s", data.Message)
	}

	return &models.Fundamentals{Metrics: data.Metrics}, nil
}
