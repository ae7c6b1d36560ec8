// Package resilience provides the HTTP client and retry policy shared by
// all upstream source clients: fixed per-call timeouts, a circuit breaker
// per upstream, and classification of failures into typed kinds.
package resilience

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/serac-weather/serac/internal/provider"
)

// ClientConfig holds configuration for an upstream HTTP client.
type ClientConfig struct {
	// Name identifies the upstream for circuit breaker naming and error
	// classification.
	Name string

	// Timeout bounds each HTTP call.
	// Default: 30 seconds
	Timeout time.Duration

	// CircuitBreaker overrides the breaker configuration.
	// If nil, DefaultCircuitBreakerConfig is used.
	CircuitBreaker *CircuitBreakerConfig

	// Registry, when set, receives the client at creation and a
	// success/failure record for every attempt.
	Registry *Registry
}

// Client wraps http.Client with a circuit breaker and per-call timeout.
// It performs exactly one attempt per Do call; retrying is the caller's
// concern (see Retry), so that retry budgets stay visible at the call
// site that owns the failure policy.
type Client struct {
	name       string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	registry   *Registry
}

// NewClient creates an upstream HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}

	c := &Client{
		name:       cfg.Name,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewCircuitBreaker[*http.Response](cbConfig), //nolint:bodyclose // type param, not a response
		registry:   cfg.Registry,
	}
	if c.registry != nil {
		c.registry.Register(c)
	}
	return c
}

// Name returns the upstream name this client was created for.
func (c *Client) Name() string {
	return c.name
}

// Do executes one HTTP attempt through the circuit breaker.
//
// Transport failures, timeouts and non-2xx statuses come back as
// *provider.Error with the appropriate kind; only 2xx responses are
// returned to the caller, which remains responsible for closing the body.
// An open circuit is surfaced as a network-kind failure so the retry
// policy's backoff gives the breaker time to half-open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.do(req)
	if c.registry != nil {
		if err != nil {
			c.registry.RecordFailure(c.name, err)
		} else {
			c.registry.RecordSuccess(c.name)
		}
	}
	return resp, err
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, err := c.httpClient.Do(req)
		if err != nil {
			return nil, provider.NewNetworkError(c.name, err)
		}
		// 5xx counts against the breaker; 4xx does not, since a bad
		// credential or missing resource says nothing about upstream health.
		if r.StatusCode >= http.StatusInternalServerError {
			drain(r)
			return nil, provider.ClassifyStatus(c.name, r.StatusCode)
		}
		return r, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, provider.NewNetworkError(c.name, err)
		}
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		drain(resp)
		return nil, provider.ClassifyStatus(c.name, resp.StatusCode)
	}

	return resp, nil
}

// CircuitState returns the current circuit breaker state.
func (c *Client) CircuitState() gobreaker.State {
	return c.breaker.State()
}

// CircuitCounts returns the current circuit breaker counts.
func (c *Client) CircuitCounts() gobreaker.Counts {
	return c.breaker.Counts()
}

// drain discards and closes a response body so the connection can be reused.
func drain(r *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, 4096))
	_ = r.Body.Close()
}
