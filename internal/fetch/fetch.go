// Package fetch retrieves JSON documents over HTTP.
package fetch

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

const (
	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 10 * time.Second

	// MaxBodySize is the largest response body that will be read.
	MaxBodySize = 10 << 20
)

var (
	// ErrInvalidJSON is returned when the response body is not valid JSON.
	ErrInvalidJSON = stderrors.New("fetch: response is not valid JSON")

	// ErrBodyTooLarge is returned when the response body exceeds MaxBodySize.
	ErrBodyTooLarge = stderrors.New("fetch: response body too large")
)

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Code classifies the status for callers that map errors to exit or status codes.
func (e *StatusError) Code() errors.ErrorCode {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return errors.CodeNotFound
	case e.StatusCode == http.StatusUnauthorized:
		return errors.CodeUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return errors.CodeForbidden
	case e.StatusCode == http.StatusTooManyRequests:
		return errors.CodeRateLimit
	case e.StatusCode >= 500:
		return errors.CodeUnavailable
	default:
		return errors.CodeNetwork
	}
}

// Client performs GET requests that expect a JSON response.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client. Options apply in order, so WithTimeout after
// WithHTTPClient changes the supplied client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption sets a header on a single request.
type RequestOption func(http.Header)

// WithBearerToken sets the Authorization header. An empty token sets nothing.
func WithBearerToken(token string) RequestOption {
	return func(h http.Header) {
		if token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithHeader sets an arbitrary request header.
func WithHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

// GetJSON fetches url and returns the body once it has been checked to be
// valid JSON. Transport failures, non-2xx responses and invalid bodies are
// all errors.
func (c *Client) GetJSON(ctx context.Context, url string, opts ...RequestOption) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "create request")
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req.Header)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNetwork, "")
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "fetched",
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNetwork, "read response")
	}
	if len(body) > MaxBodySize {
		return nil, errors.Wrap(ErrBodyTooLarge, errors.CodeNetwork, "")
	}
	if !json.Valid(body) {
		return nil, errors.Wrap(ErrInvalidJSON, errors.CodeInternal, "")
	}

	return json.RawMessage(body), nil
}
