package flashscore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/p0wz/goalsniperai-sub000/internal/platform/cache"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/metrics"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/resilience"
	"github.com/p0wz/goalsniperai-sub000/internal/usecase"
)

const (
	defaultBaseURL           = "https://flashscore4.p.rapidapi.com"
	defaultAPIHost           = "flashscore4.p.rapidapi.com"
	defaultMaxRetries        = 2
	defaultRetryInitialDelay = time.Second
	maxResponseBytes         = 6 << 20
)

var (
	ErrRateLimited   = crerr.New("flashscore rate limit exceeded")
	ErrEmptyResponse = crerr.New("flashscore returned an empty payload")
)

// FetchError is returned when a request fails for good: a non-2xx status
// other than a recoverable 429, a transport failure, or 429 after the
// retries ran out.
type FetchError struct {
	URL        string
	StatusCode int
	Attempts   int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("flashscore fetch %s failed after %d attempt(s): status=%d: %v", e.URL, e.Attempts, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("flashscore fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	APIHost           string
	Timeout           time.Duration
	MaxRetries        int
	RetryInitialDelay time.Duration
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	CacheTTL          time.Duration
	Metrics           *metrics.Pipeline
	Sleep             SleepFunc
}

type Client struct {
	httpClient        *http.Client
	baseURL           string
	apiKey            string
	apiHost           string
	maxRetries        int
	retryInitialDelay time.Duration
	logger            *logging.Logger
	metrics           *metrics.Pipeline
	sleep             SleepFunc
	breaker           *resilience.CircuitBreaker
	circuitEnabled    bool
	flight            resilience.SingleFlight[[]byte]
	responses         *cache.Store[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiHost := strings.TrimSpace(cfg.APIHost)
	if apiHost == "" {
		apiHost = defaultAPIHost
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryInitialDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryInitialDelay
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	var responses *cache.Store[[]byte]
	if cfg.CacheTTL > 0 {
		responses = cache.NewStore[[]byte](cfg.CacheTTL)
	}

	return &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		apiKey:            strings.TrimSpace(cfg.APIKey),
		apiHost:           apiHost,
		maxRetries:        maxRetries,
		retryInitialDelay: retryDelay,
		logger:            logger,
		metrics:           cfg.Metrics,
		sleep:             sleep,
		breaker:           resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:    breakerCfg.Enabled,
		responses:         responses,
	}
}

// Fetch issues a GET against path and returns the raw body of the first
// 2xx response. endpoint labels logs and metrics.
func (c *Client) Fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	if c.responses != nil {
		if raw, ok := c.responses.Get(ctx, path); ok {
			c.metrics.RecordProviderRequest(endpoint, "cached")
			return raw, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "flashscore circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			c.metrics.RecordProviderRequest(endpoint, "rejected")
			return nil, fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	load := func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, endpoint, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	}

	if c.responses != nil {
		return c.responses.GetOrLoad(ctx, path, func(context.Context) ([]byte, error) {
			return load()
		})
	}

	raw, err, _ := c.flight.Do(path, load)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// executeRequest retries only on 429. Each wait doubles the previous one,
// starting at the configured initial delay.
func (c *Client) executeRequest(ctx context.Context, endpoint, fullURL string) ([]byte, error) {
	retriesLeft := c.maxRetries
	delay := c.retryInitialDelay

	for attempt := 1; ; attempt++ {
		status, raw, err := c.send(ctx, fullURL)
		if err == nil && status >= 200 && status < 300 {
			c.metrics.RecordProviderRequest(endpoint, "ok")
			return raw, nil
		}

		if err == nil && status == http.StatusTooManyRequests && retriesLeft > 0 {
			c.logger.WarnContext(ctx, "flashscore rate limited, backing off",
				"endpoint", endpoint,
				"delay", delay.String(),
				"retries_left", retriesLeft,
			)
			c.metrics.RecordRateLimitRetry(endpoint)
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return nil, &FetchError{URL: fullURL, StatusCode: status, Attempts: attempt, Cause: sleepErr}
			}
			retriesLeft--
			delay *= 2
			continue
		}

		fetchErr := &FetchError{URL: fullURL, StatusCode: status, Attempts: attempt}
		switch {
		case err != nil:
			fetchErr.Cause = err
			c.metrics.RecordProviderRequest(endpoint, "network_error")
		case status == http.StatusTooManyRequests:
			fetchErr.Cause = crerr.Wrapf(ErrRateLimited, "body=%s", abbreviateBody(raw))
			c.metrics.RecordProviderRequest(endpoint, "rate_limited")
		default:
			fetchErr.Cause = crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
			c.metrics.RecordProviderRequest(endpoint, "http_error")
		}
		c.logger.WarnContext(ctx, "flashscore request failed", "endpoint", endpoint, "attempts", attempt, "error", fetchErr)
		return nil, fetchErr
	}
}

func (c *Client) send(ctx context.Context, fullURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		return 0, nil, crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, crerr.Wrap(err, "read response body")
	}
	return resp.StatusCode, raw, nil
}

func isCircuitFailure(err error) bool {
	var fetchErr *FetchError
	if !crerr.As(err, &fetchErr) {
		return false
	}
	return fetchErr.StatusCode == 0 || fetchErr.StatusCode == http.StatusTooManyRequests || fetchErr.StatusCode >= 500
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
