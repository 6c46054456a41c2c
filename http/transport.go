// Package http provides an HTTP-based implementation of
// hotelweather.Transport for fetching API responses, with a circuit breaker
// guarding against hammering a failing upstream.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AndKraev/hotelweather"
	"github.com/sony/gobreaker"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// Ensure Transport implements hotelweather.Transport at compile time.
var _ hotelweather.Transport = (*Transport)(nil)

// Transport issues HTTP GET requests and returns response bodies.
// Non-2xx statuses are errors so the fetch engine's retry policy applies.
type Transport struct {
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

// WithClient replaces the underlying HTTP client. The client's own timeout
// takes precedence over WithTimeout.
func WithClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// NewTransport creates a new HTTP Transport.
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		t.client = &http.Client{Timeout: t.timeout}
	}

	t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hotelweather-http",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return t
}

// Do retrieves the response body from the given URL.
func (t *Transport) Do(ctx context.Context, url string) (string, error) {
	body, err := t.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("HTTP 429 for %s", url)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	})
	if err != nil {
		return "", err
	}
	return body.(string), nil
}
