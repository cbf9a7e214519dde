// Package fetch provides the shared HTTP client used by every
// network-calling component: browser User-Agent, bounded per-request
// timeout, and a single retry-with-backoff policy.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxAttempts is the retry budget per request (first attempt
	// included).
	DefaultMaxAttempts = 3

	// DefaultBackoff is the base delay between attempts; it doubles on
	// each retry.
	DefaultBackoff = 1 * time.Second

	// DefaultUserAgent is a realistic browser User-Agent. Some paper
	// hosts reject requests that identify as a script.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// retryableStatus lists the transient statuses worth retrying.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// ErrTimeout indicates a request that did not complete within the timeout.
var ErrTimeout = errors.New("request timed out")

// userAgentTransport stamps every outgoing request with a User-Agent and an
// Accept header.
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.agent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	return t.next.RoundTrip(req)
}

// Client is an HTTP client with a fixed retry policy.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxAttempts sets the retry budget.
func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.maxAttempts = n }
}

// WithBackoff sets the base backoff delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.httpClient.Transport = &userAgentTransport{agent: agent, next: http.DefaultTransport}
	}
}

// NewClient creates a Client with the default policy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &userAgentTransport{agent: DefaultUserAgent, next: http.DefaultTransport},
		},
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues the request, retrying transient failures (429, 5xx, transport
// errors) with doubling backoff up to the attempt budget. The caller owns
// the response body. Requests must be bodyless (GET/HEAD), which is all this
// tool ever issues.
func (c *Client) Do(ctx context.Context, method, url string) (*http.Response, error) {
	return c.do(ctx, c.httpClient, method, url)
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, url string) (*http.Response, error) {
	var lastErr error
	delay := c.backoff

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}

		resp, err := hc.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			if isTimeout(err) {
				lastErr = fmt.Errorf("%s: %w", url, ErrTimeout)
			} else {
				lastErr = err
			}
			continue
		}

		if retryableStatus[resp.StatusCode] {
			resp.Body.Close()
			lastErr = fmt.Errorf("%s: transient status %d", url, resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// Get issues a GET with the retry policy.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, url)
}

// Check performs a lightweight existence check: HEAD first, falling back to
// a GET when the server rejects HEAD (405/400/403). Redirects are not
// followed; the first response's status is the answer, so callers can treat
// a redirect as proof the URL resolves.
func (c *Client) Check(ctx context.Context, url string) (int, error) {
	hc := *c.httpClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := c.do(ctx, &hc, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMethodNotAllowed, http.StatusBadRequest, http.StatusForbidden:
		resp, err = c.do(ctx, &hc, http.MethodGet, url)
		if err != nil {
			return 0, err
		}
		resp.Body.Close()
	}

	return resp.StatusCode, nil
}

// IsTimeout reports whether the error came from an exhausted request
// timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
