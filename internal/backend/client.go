package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/filmcard/internal/film"
)

// Fetcher retrieves raw film details for a locator.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchMovie(ctx context.Context, locator *string) (film.Payload, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the film-details HTTP API.
type Client struct {
	baseURL   *url.URL
	endpoint  string
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "127.0.0.1:8000"
	defaultEndpoint  = "/api/movie"
	defaultUserAgent = "filmcard/0.1"
)

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the request path.
func WithEndpoint(path string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			if !strings.HasPrefix(trimmed, "/") {
				trimmed = "/" + trimmed
			}
			c.endpoint = trimmed
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the given base URL or host:port.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		endpoint:  defaultEndpoint,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the absolute request URL.
func (c *Client) Endpoint() string {
	return c.baseURL.ResolveReference(&url.URL{Path: c.endpoint}).String()
}

type movieRequest struct {
	FilmURL *string `json:"film_url,omitempty"`
}

// FetchMovie posts the locator and decodes the film-details payload.
// A nil locator is sent as an empty object.
func (c *Client) FetchMovie(ctx context.Context, locator *string) (film.Payload, error) {
	if c == nil {
		return film.Payload{}, fmt.Errorf("client is nil")
	}
	var payload film.Payload
	if err := c.post(ctx, c.endpoint, movieRequest{FilmURL: locator}, &payload); err != nil {
		return film.Payload{}, err
	}
	return payload, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return &StatusError{Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &MalformedPayloadError{Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
