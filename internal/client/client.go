// Package client talks to the remote consent analysis service.
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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sprite-ai/consentlens/internal/model"
)

// AnalyzePath is the service endpoint that analyzes a consent agreement.
const AnalyzePath = "/analyze-consent"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

var (
	// ErrTransport covers failures to reach the service at all.
	ErrTransport = errors.New("analysis service unreachable")
	// ErrMalformedResponse is returned when the body is not a JSON object
	// of the expected shape.
	ErrMalformedResponse = errors.New("malformed analysis response")
	// ErrUnexpectedStatus matches every *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status from analysis service")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis service returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("analysis service returned %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) true for any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Client is an HTTP client for the analysis service.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL, e.g. "http://127.0.0.1:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + AnalyzePath,
		http:     &http.Client{Timeout: 60 * time.Second},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full analyze URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends one analysis request and decodes the result.
func (c *Client) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if req.Permissions == nil {
		req.Permissions = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log := c.logger.With("request_id", requestID, "endpoint", c.endpoint)
	log.Debug("sending analysis request", "permissions", len(req.Permissions), "policy_bytes", len(req.PolicyText))

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("analysis request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn("reading analysis response failed", "error", err)
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	log.Debug("analysis response", "status", resp.StatusCode, "bytes", len(data), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: excerpt(data)}
	}

	result, err := decodeResult(data)
	if err != nil {
		log.Warn("malformed analysis response", "error", err)
		return nil, err
	}
	return result, nil
}

// decodeResult parses a response body. Missing fields are tolerated;
// anything that is not a JSON object, or has fields of the wrong type, is
// malformed.
func decodeResult(data []byte) (*model.AnalysisResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if result.WhyItMatters == nil {
		result.WhyItMatters = []string{}
	}
	return &result, nil
}

func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
