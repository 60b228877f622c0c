// Package api is the typed client for the Classboard REST API. Every
// network round trip in the application goes through Client.do so the
// bearer header, correlation id, error normalization and the global 401
// handler apply uniformly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnauthorized matches any 401 response via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// genericDetail is shown when a failure carries no parsable detail message.
const genericDetail = "Something went wrong. Please try again."

// Error is a normalized non-2xx API response. Detail carries the server's
// message when the body held one, otherwise a generic fallback.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) detect 401s regardless of
// which endpoint produced them.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// TokenSource supplies the current access token, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// Config carries the client's construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
}

// Client talks to the platform API. It is safe for use from the single
// UI goroutine; requests are one-at-a-time round trips.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         zerolog.Logger
}

// New constructs a Client. The base URL must include the versioned API
// prefix, e.g. http://localhost:8000/api/v1.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     cfg.Tokens,
		logger:     logger.With().Str("component", "api_client").Logger(),
	}, nil
}

// HandleUnauthorized registers the process-wide 401 hook. It fires from
// the shared dispatch path on every 401, whichever endpoint produced it.
func (c *Client) HandleUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured API root, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// pageQuery builds the skip/limit query pair used by paginated endpoints.
func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// do is the unified request helper. A nil out discards the response body;
// otherwise the 2xx body is decoded as JSON into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", uuid.NewString())

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.logger.Info().Str("path", path).Msg("unauthorized response, clearing session")
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getJSON issues an authenticated GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// sendJSON issues a request with a JSON-encoded body.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, nil, body, "application/json", out)
}

// sendForm issues a POST with a form-encoded body, as the login endpoint
// requires.
func (c *Client) sendForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

// decodeError normalizes a non-2xx response into *Error, preferring the
// server's {"detail": ...} message and falling back to a generic one.
func (c *Client) decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Detail: genericDetail}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Detail) != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
