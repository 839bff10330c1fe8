package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/taskmap/pkg/buildinfo"
	"github.com/matzehuels/taskmap/pkg/observability"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second

	// maxBodySize caps response bodies read into memory.
	maxBodySize = 32 << 20
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client performs JSON requests with retry.
type Client struct {
	HTTP     *http.Client
	Headers  map[string]string
	Attempts int
	Delay    time.Duration
}

// NewClient returns a Client with default retry settings. A nil hc gets a
// client with a 30 second timeout.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		HTTP:     hc,
		Headers:  map[string]string{},
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
	}
}

// GetJSON fetches rawURL and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// Get fetches rawURL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	var body []byte
	err = Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.do(ctx, u)
		return err
	})
	return body, err
}

func (c *Client) do(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "taskmap/"+buildinfo.Version)
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, Retryable(serr)
		}
		return nil, serr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, Retryable(err)
	}
	return body, nil
}
