package remote

// Package remote is the outbound call layer to the remote application server.
// Every failed response is handed to the failure classifier before it reaches the caller.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/observability/metrics"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
	"github.com/target/mmk-ui-gate/internal/ports"
)

const (
	defaultTimeout = 10 * time.Second
	// maxFailureBody bounds how much of an error response is kept on the failure.
	maxFailureBody = 64 << 10
)

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL    string                  // Required, absolute http(s) URL
	Classifier ports.FailureClassifier // Required
	Timeout    time.Duration           // Optional, defaults to 10s
	HTTPClient *http.Client            // Optional; its Jar is replaced when nil
	Logger     *slog.Logger            // Optional
	Metrics    statsd.Sink             // Optional, receives call durations
}

// Client performs JSON calls against the remote server and keeps its session cookie.
type Client struct {
	base       *url.URL
	http       *http.Client
	classifier ports.FailureClassifier
	logger     *slog.Logger
	metrics    statsd.Sink
}

// Request describes one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// NewClient validates opts and builds a client with a public-suffix aware cookie jar.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Classifier == nil {
		return nil, errors.New("remote client: classifier is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote client: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("remote client: invalid base url scheme %q", base.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Timeout == 0 {
		hc.Timeout = opts.Timeout
		if hc.Timeout <= 0 {
			hc.Timeout = defaultTimeout
		}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("remote client: cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:       base,
		http:       hc,
		classifier: opts.Classifier,
		logger:     logger.With("component", "remote"),
		metrics:    opts.Metrics,
	}, nil
}

// BaseURL returns the server root the client calls.
func (c *Client) BaseURL() string { return c.base.String() }

// Do sends req and decodes a successful JSON response into out (when non-nil).
//
// A response with status >= 400 becomes a *domainauth.RemoteFailure, which is
// passed through the classifier and returned as the classifier hands it back.
// Errors without a response, such as a refused connection or a cancelled
// context, are returned unchanged.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.EmitRemoteCall(c.metrics, httpReq.Method, 0, time.Since(start))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	elapsed := time.Since(start)
	metrics.EmitRemoteCall(c.metrics, httpReq.Method, resp.StatusCode, elapsed)
	c.logger.DebugContext(ctx, "remote call",
		"method", httpReq.Method,
		"url", httpReq.URL.String(),
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds())

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFailureBody))
		return c.classifier.Classify(ctx, &domainauth.RemoteFailure{
			Method:     httpReq.Method,
			URL:        httpReq.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header.Clone(),
			Body:       body,
		})
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", httpReq.Method, req.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.base.JoinPath(req.Path)

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, req.Path, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}
