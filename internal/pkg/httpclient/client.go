package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

// Options configures a single outbound request.
type Options struct {
	Method  string
	Headers map[string]string
	Body    interface{}
}

// Client is a thin wrapper around net/http for services that call
// third-party JSON APIs. No retries or backoff; timeouts are whatever
// the underlying http.Client carries.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient falls back to http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Request performs a single network call and decodes the JSON response body
// into out. Failures are wrapped with the original message.
func (c *Client) Request(ctx context.Context, url string, opts Options, out interface{}) error {
	resp, err := c.do(ctx, url, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status %d: %s", apperrors.ErrExternalService, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrExternalService, err)
	}
	return nil
}

// RequestWithHeaders performs the same call as Request but also returns the
// response headers. On failure it returns empty headers rather than an error,
// so callers that only care about best-effort metadata keep working.
func (c *Client) RequestWithHeaders(ctx context.Context, url string, opts Options, out interface{}) (http.Header, error) {
	resp, err := c.do(ctx, url, opts)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("Outbound request failed, returning placeholder response")
		return http.Header{}, nil
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("Failed to decode outbound response body")
		}
	}
	return resp.Header, nil
}

func (c *Client) do(ctx context.Context, url string, opts Options) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	return c.httpClient.Do(req)
}
