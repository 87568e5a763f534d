package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"afisha/internal/ports/output"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	tracerName           = "afisha/api"
	headerNgrokSkip      = "ngrok-skip-browser-warning"
	headerIdempotencyKey = "Idempotency-Key"
	headerAPIKey         = "X-API-KEY"
)

type authMode int

const (
	authNone authMode = iota
	authBearer
	authAdmin // bearer + X-API-KEY when configured
)

// Client talks to the afisha REST backend.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   output.TokenSource
	adminKey string
	loc      *time.Location
	tracer   trace.Tracer
	logger   *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts output.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithAdminAPIKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

// WithLocation sets the zone of backend timestamps that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client for baseURL (trailing slashes are ignored).
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		loc:    time.Local,
		tracer: otel.Tracer(tracerName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the session once it exists; the session itself needs the client.
func (c *Client) SetTokenSource(ts output.TokenSource) {
	c.tokens = ts
}

type request struct {
	method  string
	path    string
	route   string // path template used as span name
	query   url.Values
	body    any
	auth    authMode
	headers map[string]string
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *Client) do(ctx context.Context, req request) (response, error) {
	route := req.route
	if route == "" {
		route = req.path
	}
	ctx, span := c.tracer.Start(ctx, req.method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var reader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return response{}, fmt.Errorf("encode %s body: %w", route, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reader)
	if err != nil {
		return response{}, fmt.Errorf("build %s request: %w", route, err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(headerNgrokSkip, "true")
	if req.auth != authNone && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if req.auth == authAdmin && c.adminKey != "" {
		httpReq.Header.Set(headerAPIKey, c.adminKey)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return response{}, fmt.Errorf("%s %s: %w", req.method, route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return response{}, fmt.Errorf("read %s response: %w", route, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
		c.logger.Debug("backend call failed", "method", req.method, "route", route, "status", resp.StatusCode)
	}
	return response{status: resp.StatusCode, body: body}, nil
}
