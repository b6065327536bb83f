// Package api provides the HTTP client for the landing page analysis service.
package api

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

	"github.com/f3rmion/grader/internal/grader"
)

const (
	// DefaultBaseURL is the local development address of the analysis service.
	DefaultBaseURL = "http://localhost:8000"

	analyzePath   = "/analyze"
	failurePrefix = "Analysis failed: "
)

// RequestFailedError is returned when the service answers with a non-2xx status.
type RequestFailedError struct {
	StatusCode int
	StatusText string
}

func (e *RequestFailedError) Error() string {
	return failurePrefix + e.StatusText
}

// MalformedResponseError is returned when a 2xx body cannot be decoded into a scorecard.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return failurePrefix + "malformed response: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Client talks to the analysis service. It makes a single attempt per call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client passed in is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at baseURL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + analyzePath,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze submits req and returns the graded scorecard.
func (c *Client) Analyze(ctx context.Context, req grader.AnalyzeRequest) (*grader.AnalyzeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info("submitting analysis", "endpoint", c.endpoint, "mode", req.Mode())
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("analysis request failed", "error", err)
		return nil, fmt.Errorf("sending analysis request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Info("analysis response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailedError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analysis response: %w", err)
	}

	var result grader.AnalyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.Warn("undecodable analysis body", "error", err, "bytes", len(respBody))
		return nil, &MalformedResponseError{Err: err}
	}
	if err := result.Validate(); err != nil {
		c.logger.Warn("incomplete analysis body", "error", err)
		return nil, &MalformedResponseError{Err: err}
	}

	return &result, nil
}

// statusText extracts the reason phrase from the status line, e.g. "Internal Server Error".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// IsRequestFailed reports whether err came from a non-2xx response.
func IsRequestFailed(err error) bool {
	var rf *RequestFailedError
	return errors.As(err, &rf)
}

// IsMalformedResponse reports whether err came from an undecodable or incomplete body.
func IsMalformedResponse(err error) bool {
	var mr *MalformedResponseError
	return errors.As(err, &mr)
}

// Message returns the text shown to the user for a failed analysis.
// Errors that do not already carry the "Analysis failed" prefix get it.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if IsRequestFailed(err) || IsMalformedResponse(err) {
		return err.Error()
	}
	return failurePrefix + err.Error()
}
