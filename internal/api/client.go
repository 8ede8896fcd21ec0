package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/config"
	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

// Client is the gateway to the SEOScribe HTTP API. It injects bearer auth
// from the credential store, enforces per-request timeouts via context
// cancellation, and decodes structured errors.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	creds           store.Store
	requestTimeout  time.Duration
	generateTimeout time.Duration
}

// NewClient creates a gateway client from configuration. The credential
// store supplies the persisted bearer token, when any.
func NewClient(cfg *config.Config, creds store.Store) *Client {
	return &Client{
		baseURL:         strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient:      &http.Client{},
		creds:           creds,
		requestTimeout:  cfg.RequestTimeout,
		generateTimeout: cfg.GenerateTimeout,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether a bearer token is persisted.
func (c *Client) HasToken() bool {
	token, ok := c.creds.GetItem(store.KeyAccessToken)
	return ok && token != ""
}

// RequestOptions controls a single gateway call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is JSON-encoded when non-nil.
	Body any
	// Auth injects the persisted bearer token; a missing token is silently
	// omitted so anonymous/demo calls work.
	Auth bool
	// Timeout overrides the default per-request deadline.
	Timeout time.Duration
	// Headers are merged over the defaults.
	Headers map[string]string
}

// Request performs one HTTP round-trip and returns the raw response body.
// A 204 or empty body returns nil. A non-JSON success body is returned as
// raw text bytes. Failures are *Error values; see the Kind taxonomy.
// No retries: every failure is surfaced after a single attempt.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if opts.Auth {
		if token, ok := c.creds.GetItem(store.KeyAccessToken); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(ctx, err) {
			return nil, newTimeoutError()
		}
		return nil, &Error{Kind: KindGeneric, Message: err.Error()}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeoutErr(ctx, err) {
			return nil, newTimeoutError()
		}
		return nil, &Error{Kind: KindGeneric, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "application/json") {
		if !json.Valid(body) {
			logger.Error("invalid JSON in declared-JSON response", "endpoint", endpoint)
			return nil, &Error{
				Kind:    KindInvalidResponse,
				Status:  resp.StatusCode,
				Message: "Invalid JSON response",
			}
		}
		return body, nil
	}

	// Non-JSON success: hand back the raw text.
	return body, nil
}

// isTimeoutErr distinguishes a deadline cancellation from other transport
// failures.
func isTimeoutErr(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decode unmarshals a response body into T. A nil body yields the zero value.
func decode[T any](body []byte) (T, error) {
	var value T
	if len(body) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(body, &value); err != nil {
		return value, &Error{
			Kind:    KindInvalidResponse,
			Message: "Invalid JSON response",
		}
	}
	return value, nil
}
