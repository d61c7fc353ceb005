// Package remote implements store.Store against the layout HTTP API.
//
// The client speaks the venue endpoints served by package server:
//
//	GET  {base}/club/{venue}              -> store.FetchResponse
//	POST {base}/club/{venue}/save-layout  <- store.SaveRequest
//
// Transport failures, 408, 429 and 5xx responses are retried with
// exponential backoff. A 404 on fetch means the venue has no layout.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	tperrors "github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/httputil"
	"github.com/matzehuels/tableplan/pkg/observability"
	"github.com/matzehuels/tableplan/pkg/store"
)

const defaultTimeout = 10 * time.Second

// ErrNetwork marks transport and server-side failures.
var ErrNetwork = errors.New("network error")

// Client is an HTTP layout store.
type Client struct {
	base     *url.URL
	http     *http.Client
	headers  map[string]string
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeaders adds headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

// WithRetry sets the attempt count and the initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// WithLogger sets the logger used for request tracing and decode warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if err := tperrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, tperrors.Wrap(tperrors.ErrCodeInvalidInput, err, "parse store url")
	}
	c := &Client{
		base:     u,
		http:     &http.Client{Timeout: defaultTimeout},
		attempts: 3,
		delay:    500 * time.Millisecond,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch implements store.Store.
func (c *Client) Fetch(ctx context.Context, venueID string) (*store.Document, error) {
	var resp store.FetchResponse
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.do(ctx, http.MethodGet, c.venueURL(venueID), nil)
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(&resp); err != nil {
			return tperrors.Wrap(tperrors.ErrCodeInvalidFormat, err, "decode venue response")
		}
		return nil
	})
	if errors.Is(err, httputil.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := resp.Layout()
	if rec == nil {
		return nil, nil
	}
	doc := store.DecodeDocument(*rec, c.logger.With("venue", venueID))
	return &doc, nil
}

// Put implements store.Store.
func (c *Client) Put(ctx context.Context, venueID string, doc store.Document) error {
	rec := store.EncodeDocument(doc)
	payload, err := json.Marshal(store.SaveRequest{TableLayout: &rec})
	if err != nil {
		return fmt.Errorf("marshal save request: %w", err)
	}
	return httputil.Retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.do(ctx, http.MethodPost, c.venueURL(venueID)+"/save-layout", payload)
		if err != nil {
			return err
		}
		_, _ = io.Copy(io.Discard, body)
		return body.Close()
	})
}

func (c *Client) venueURL(venueID string) string {
	return c.base.String() + "/club/" + url.PathEscape(venueID)
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) (io.ReadCloser, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))
	c.logger.Debug("layout api", "method", method, "path", path, "status", resp.StatusCode)

	if err := httputil.CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

var _ store.Store = (*Client)(nil)
