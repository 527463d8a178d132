package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/recruitdash/internal/collector"
	"github.com/newthinker/recruitdash/internal/core"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 10 * time.Second

	// maxBodyBytes caps a single dataset response.
	maxBodyBytes = 8 << 20
)

// Client fetches datasets from the upstream data service.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a new upstream client. A zero timeout falls back to the default.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ collector.Fetcher = (*Client)(nil)

func (c *Client) Name() string {
	return "upstream"
}

// URL returns the endpoint for ds.
func (c *Client) URL(ds core.Dataset) string {
	return c.baseURL + ds.Path
}

// Fetch GETs the dataset endpoint and decodes the JSON array body.
func (c *Client) Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(ds), nil)
	if err != nil {
		return nil, core.WrapError(core.ErrFetchFailed, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, core.WrapError(core.ErrFetchTimeout, err)
		}
		return nil, core.WrapError(core.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, core.WrapError(core.ErrFetchTimeout, err)
		}
		return nil, core.WrapError(core.ErrFetchFailed, fmt.Errorf("reading body: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, core.WrapError(core.ErrMalformedData,
			fmt.Errorf("response exceeds %d bytes", maxBodyBytes))
	}

	return collector.ParsePoints(body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
