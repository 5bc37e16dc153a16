// Package client provides a thin HTTP client for the grocery API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/groceries/internal/metrics"
)

// Header names sent to the grocery API.
const (
	HeaderAuthToken = "X-Auth-Token"
	HeaderRequestID = "X-Request-ID"
)

// ErrTransport wraps failures to reach the API at all (DNS, refused
// connections, timeouts). Callers that care can retry on it.
var ErrTransport = errors.New("transport error")

// Verb is the closed set of HTTP methods the grocery API uses.
type Verb int

// Supported verbs.
const (
	Get Verb = iota
	Post
	Put
	Delete
)

// Method returns the net/http method name for v.
func (v Verb) Method() string {
	switch v {
	case Get:
		return http.MethodGet
	case Post:
		return http.MethodPost
	case Put:
		return http.MethodPut
	case Delete:
		return http.MethodDelete
	default:
		return ""
	}
}

func (v Verb) String() string {
	if m := v.Method(); m != "" {
		return m
	}
	return "Verb(" + strconv.Itoa(int(v)) + ")"
}

// Response is the raw outcome of a request. Status codes are not
// interpreted by the client.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the API answered 200.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Decode unmarshals the JSON body into dst. An empty body leaves dst as is.
func (r *Response) Decode(dst any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Client is a thin HTTP client for the grocery API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	requestID  func() string
}

// New creates a new API client targeting the given base URL. The base URL
// is joined to request paths by plain concatenation.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the token sent in the X-Auth-Token header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithRateLimit caps outgoing requests to perSecond with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(f func() string) Option {
	return func(c *Client) {
		c.requestID = f
	}
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, Get, path, nil, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, Post, path, body, nil)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, Put, path, body, nil)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, Delete, path, nil, nil)
}

// DefaultHeaders returns the headers attached when a request supplies none.
func (c *Client) DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set(HeaderAuthToken, c.token)
	h.Set("Content-Type", "application/json")
	return h
}

// Request sends verb to baseURL+path. body is JSON-encoded unless it is
// already a []byte. When headers is nil the default token and content-type
// headers are sent; otherwise exactly headers are sent.
func (c *Client) Request(
	ctx context.Context,
	verb Verb,
	path string,
	body any,
	headers http.Header,
) (*Response, error) {
	method := verb.Method()
	if method == "" {
		return nil, fmt.Errorf("unsupported verb %s", verb)
	}

	bodyReader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if headers == nil {
		headers = c.DefaultHeaders()
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	reqID := c.requestID()
	req.Header.Set(HeaderRequestID, reqID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ClientRequestsTotal.WithLabelValues(method, "error").Inc()
		c.logger.Debug("api request failed",
			"method", method, "path", path, "request_id", reqID, "error", err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if isConnectionRefused(err) {
			return nil, fmt.Errorf("%w: API server not running at %s", ErrTransport, c.baseURL)
		}
		return nil, fmt.Errorf("%w: sending request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	metrics.ClientRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.ClientRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", reqID,
	)

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
