// Package transport performs the raw HTTP GETs against the TruckersMP
// API and classifies every outcome into the apierrors taxonomy.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Keksclan/goTruckersMP/apierrors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client issues single GET requests for JSON. The zero value is not
// usable; construct with NewClient.
type Client struct {
	http    *http.Client
	headers map[string]string
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Timeouts are
// applied per request via context, so the injected client needs none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeaders sets headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

// WithTracerProvider supplies the TracerProvider used to create one
// client span per upstream call. When unset the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer("github.com/Keksclan/goTruckersMP/transport")
	}
}

// NewClient creates a transport Client.
func NewClient(opts ...Option) *Client {
	c := &Client{http: &http.Client{}}
	for _, o := range opts {
		o(c)
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer("github.com/Keksclan/goTruckersMP/transport")
	}
	return c
}

// Get performs one GET against rawURL and returns the response body as
// raw JSON. Status codes map onto the error taxonomy: 404 is a
// NotFoundError, 429 a RateLimitError, and any other non-2xx status,
// network failure or timeout a ConnectError. The caller bounds the
// request through ctx.
func (c *Client) Get(ctx context.Context, rawURL string) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "truckersmp.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", rawURL)),
	)
	defer span.End()

	raw, err := c.get(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return raw, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &apierrors.ConnectError{URL: rawURL, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apierrors.ConnectError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &apierrors.ConnectError{URL: rawURL, Err: err}
		}
		return json.RawMessage(body), nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &apierrors.RateLimitError{URL: rawURL}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &apierrors.NotFoundError{URL: rawURL}
	default:
		return nil, &apierrors.ConnectError{URL: rawURL}
	}
}
