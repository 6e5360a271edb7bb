// Package api is the client for the external ShopHub REST API. Every call
// takes a context, carries a correlation id, and retries transport failures
// a bounded number of times; stale or cancelled requests never surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// APIError is an application-level failure: the server answered with a
// well-formed {success:false, error} envelope. Transport failures are
// returned as-is (wrapped), distinct from this type.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// ErrNotFound wraps 404 responses so callers can branch on missing records.
var ErrNotFound = errors.New("api: not found")

// TokenSource supplies the bearer token attached to authenticated calls.
// A nil source means unauthenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenSource
	logger       *slog.Logger
	maxRetries   int
	retryBackoff time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetry bounds transport-failure retries. Zero retries is valid.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBackoff = backoff
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is embedded in every response payload struct.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type enveloped interface {
	status() (bool, string)
}

func (e envelope) status() (bool, string) { return e.Success, e.Error }

func (c *Client) get(ctx context.Context, path string, out enveloped) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out enveloped) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any, out enveloped) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out enveloped) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out enveloped) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
	}

	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			}
			c.logger.Debug("retrying request", "method", method, "path", path, "attempt", attempt)
		}

		err := c.doOnce(ctx, method, path, requestID, payload, out)
		if err == nil {
			return nil
		}
		// application errors and cancellations are final; only transport
		// failures are worth another attempt
		var apiErr *APIError
		if errors.As(err, &apiErr) || errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("api: %s %s failed after %d attempts: %w", method, path, c.maxRetries+1, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, path, requestID string, payload []byte, out enveloped) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("api: resolving auth token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("api: decoding response: %w", err)
	}

	if ok, msg := out.status(); !ok {
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}
