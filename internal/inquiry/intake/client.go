// Package intake delivers inquiry payloads to the external inquiry-intake
// service over HTTP.
package intake

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/voicebridge/internal/inquiry"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000"
	// InquiryPath is appended to the base URL.
	InquiryPath = "/api/inquiry"

	statusSuccess    = "success"
	maxResponseBytes = 64 << 10
	instrumentation  = "github.com/louisbranch/voicebridge/internal/inquiry/intake"
)

// Config configures the intake client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts inquiry payloads. It implements inquiry.Submitter.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewClient validates cfg and builds a client. A blank base URL falls back
// to DefaultBaseURL; a zero timeout leaves the transport default in place.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse inquiry base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("inquiry base url %q must be http or https", base)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("inquiry base url %q has no host", base)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("inquiry timeout must not be negative")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   base + InquiryPath,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		tracer:     otel.Tracer(instrumentation),
		propagator: otel.GetTextMapPropagator(),
	}, nil
}

// Endpoint returns the full inquiry URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts payload as JSON. A request that never gets a response fails
// with *inquiry.TransportError; a non-2xx status or a response whose status
// is not "success" fails with *inquiry.RejectedError.
func (c *Client) Submit(ctx context.Context, payload inquiry.Payload) (err error) {
	ctx, span := c.tracer.Start(ctx, "inquiry.intake.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", c.endpoint),
			attribute.String("inquiry.support_type", string(payload.SupportType)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal inquiry payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &inquiry.TransportError{Err: fmt.Errorf("build inquiry request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &inquiry.TransportError{Err: err}
	}
	defer res.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return &inquiry.TransportError{Err: fmt.Errorf("read inquiry response: %w", err)}
	}
	decoded, decodeErr := decodeResponse(raw)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &inquiry.RejectedError{StatusCode: res.StatusCode, Message: decoded.Message}
	}
	if decodeErr != nil || decoded.Status != statusSuccess {
		return &inquiry.RejectedError{StatusCode: res.StatusCode, Message: decoded.Message}
	}
	return nil
}

func decodeResponse(raw []byte) (response, error) {
	var out response
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, errors.New("empty inquiry response")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return response{}, fmt.Errorf("decode inquiry response: %w", err)
	}
	out.Status = strings.TrimSpace(out.Status)
	out.Message = strings.TrimSpace(out.Message)
	return out, nil
}
