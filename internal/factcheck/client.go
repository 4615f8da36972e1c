package factcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is where the API listens in a local development setup.
const DefaultBaseURL = "http://localhost:8000"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client calls the FactGuard API. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRateLimit paces outgoing requests. A non-positive interval disables pacing.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a client for the API at baseURL.
// If baseURL is empty, defaults to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ExtractClaims asks the service for the checkable claims in the input.
// An empty list is returned as-is; deciding what that means is up to the caller.
func (c *Client) ExtractClaims(ctx context.Context, req ExtractRequest) ([]Claim, error) {
	var resp extractResponse
	if err := c.post(ctx, OpExtract, "/extract_claims", req, &resp); err != nil {
		return nil, err
	}
	if resp.Claims == nil {
		return []Claim{}, nil
	}
	return resp.Claims, nil
}

// Check submits the confirmed claims for verification.
func (c *Client) Check(ctx context.Context, req CheckRequest) (*Results, error) {
	var res Results
	if err := c.post(ctx, OpCheck, "/check", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// post sends body as JSON and decodes a 2xx response into out.
// Every failure comes back as a transport *Error. There is no retry:
// a failed call is reported to the user, who decides whether to try again.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return NewTransportError(op, 0, "rate limiter", err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return NewTransportError(op, 0, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return NewTransportError(op, 0, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return NewTransportError(op, 0, "request cancelled", ctx.Err())
		}
		return NewTransportError(op, 0, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return NewTransportError(op, resp.StatusCode, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewTransportError(op, resp.StatusCode, "API error", fmt.Errorf("%s", truncate(string(respBody), 200)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return NewTransportError(op, resp.StatusCode, "parse response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
