// Package client provides the HTTP client for the Instagram aggregation API.
// It performs exactly one request per call: no caching and no retries.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
	"github.com/Sternrassler/instagram-api-client/pkg/logging"
	"github.com/Sternrassler/instagram-api-client/pkg/schema"
)

// Prometheus metrics for upstream requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instagram_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instagram_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instagram_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// Upstream authentication headers.
const (
	HeaderHost = "x-rapidapi-host"
	HeaderKey  = "x-rapidapi-key"
)

// DefaultTimeout is the deadline of every single request.
const DefaultTimeout = 30 * time.Second

// Config holds the client configuration.
type Config struct {
	// BaseURL of the aggregation API, e.g. "https://instagram-scraper.p.rapidapi.com".
	// Its host is sent as the x-rapidapi-host header.
	BaseURL string

	// APIKey is sent as the x-rapidapi-key header.
	APIKey string

	// Timeout per request. A request exceeding it fails; it is not retried.
	Timeout time.Duration
}

// DefaultConfig returns a configuration with the standard request timeout.
func DefaultConfig(baseURL, apiKey string) Config {
	return Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: DefaultTimeout,
	}
}

// Client issues GET requests against the aggregation API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
	logger     zerolog.Logger
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    u.Host,
		apiKey:  cfg.APIKey,
		logger:  logging.NewLogger("instagram-client"),
	}, nil
}

// Get performs one GET request and returns the body of a 2xx response.
// Transport failures and non-2xx statuses are returned as apierr.KindUpstream.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apierr.Upstream(endpoint, "create request", 0, err)
	}
	req.Header.Set(HeaderHost, c.host)
	req.Header.Set(HeaderKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", query.Encode()).
		Msg("Executing upstream request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errClass := classifyError(nil, err)
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).
			Str("endpoint", endpoint).
			Str("error_class", string(errClass)).
			Msg("Upstream request failed")
		return nil, apierr.Upstream(endpoint, "request failed", 0, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if errClass := classifyError(resp, nil); errClass != "" {
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Upstream returned error status")
		return nil, statusError(endpoint, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, apierr.Upstream(endpoint, "read response body", resp.StatusCode, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Dur("duration", time.Since(startTime)).
		Msg("Upstream request completed")

	return body, nil
}

// Decode decodes a response body into its envelope and returns the data
// section. A malformed body is apierr.KindDecoding; an upstream "fail" status
// is apierr.KindUpstream carrying the upstream message.
func Decode[D any](endpoint string, body []byte) (*D, error) {
	logger := logging.NewLogger("instagram-client")

	env, err := schema.Decode[D](body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecoding)).Inc()
		logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Malformed upstream response")
		return nil, apierr.Decoding(endpoint, err)
	}

	if env.Failed() {
		errorsTotal.WithLabelValues(string(ErrorClassFailStatus)).Inc()
		logger.Warn().
			Str("endpoint", endpoint).
			Str("message", env.Message).
			Msg("Upstream reported failure")
		return nil, apierr.Upstream(endpoint, fmt.Sprintf("API request failed: %s", env.Message), 0, nil)
	}

	return env.Data, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
