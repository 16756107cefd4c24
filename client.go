package trackvia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://go.trackvia.com"

	// clientID identifies this API integration to the token endpoint.
	// Fixed by the service; not a secret.
	clientID = "TrackViaAPI"

	userAgent = "trackvia-go/0.1"

	defaultTimeout = 30 * time.Second

	// maxAuthRetries bounds the refresh-and-retry cycle. Tokens expire
	// server-side without notice, so each call heals itself once; more
	// than once would loop forever on a broken refresh token.
	maxAuthRetries = 1
)

// Client talks to the TrackVia API. It handles request construction,
// authentication query parameters, and the refresh-and-retry cycle for
// expired access tokens.
//
// A Client is safe for concurrent use: credential state is mutex-guarded
// and every attempt snapshots the access token at dispatch. Concurrent
// calls that hit an expired token may each trigger a refresh — the
// one-retry bound holds per call, not per Client.
type Client struct {
	baseURL    string
	userKey    string
	httpClient *http.Client
	logger     *slog.Logger
	creds      credentials
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint. Trailing slashes
// are stripped.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured log sink. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates an API client. userKey is the static per-application API
// key; it rides on every request. Call Authorize before any resource
// operation.
func New(userKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userKey:    userKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Request describes one API call: an HTTP method, a path under the base
// URL, query parameters, and an optional body factory. The factory is
// invoked once per attempt so a refresh-triggered retry can replay the
// body — a plain io.Reader would be drained by the first attempt.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body returns a fresh body reader and its content type.
	// Nil for bodyless requests.
	Body func() (io.Reader, string, error)
}

// jsonBody returns a body factory for a fixed JSON payload.
func jsonBody(payload []byte) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		return strings.NewReader(string(payload)), "application/json", nil
	}
}

// do executes an authenticated request with at most one refresh-and-retry
// cycle and returns the raw response body.
//
// The loop below is the whole protocol: attempt, classify, and — only for
// a transient auth failure on the first attempt — refresh and go around
// once more. Every other failure propagates immediately, and the second
// attempt's outcome is final either way.
func (c *Client) do(ctx context.Context, req *Request) ([]byte, error) {
	callID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		body, err := c.transport(ctx, req, c.creds.accessToken())
		if err == nil {
			if attempt > 0 {
				c.logger.Debug("request succeeded after token refresh",
					slog.String("call_id", callID),
					slog.String("path", req.Path),
				)
			}

			return body, nil
		}

		var apiErr *APIError
		if attempt >= maxAuthRetries || !errors.As(err, &apiErr) || !apiErr.transientAuth() {
			return nil, err
		}

		c.logger.Info("access token rejected, refreshing",
			slog.String("call_id", callID),
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error_name", apiErr.Name),
		)

		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return nil, refreshErr
		}
	}
}

// transport performs a single HTTP round trip. The user key always rides
// in the query string; accessToken is added when non-empty. Non-2xx
// responses are classified into *APIError or *HTTPError.
func (c *Client) transport(ctx context.Context, req *Request, accessToken string) ([]byte, error) {
	query := url.Values{}
	for k, vs := range req.Query {
		query[k] = vs
	}

	query.Set("user_key", c.userKey)

	if accessToken != "" {
		query.Set("access_token", accessToken)
	}

	var (
		bodyReader  io.Reader
		contentType string
	)

	if req.Body != nil {
		var err error

		bodyReader, contentType, err = req.Body()
		if err != nil {
			return nil, fmt.Errorf("trackvia: building request body: %w", err)
		}
	}

	fullURL := c.baseURL + req.Path + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("trackvia: creating request: %w", err)
	}

	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("trackvia: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("trackvia: reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
		)

		return nil, classifyResponse(resp.StatusCode, respBody)
	}

	c.logger.Debug("request succeeded",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
	)

	return respBody, nil
}
