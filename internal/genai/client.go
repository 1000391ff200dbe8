// Package genai is the best-effort client for the external generative
// inference service. Every call site carries a deterministic local
// fallback; a failure here never fails the pipeline.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request describes one image-generation call.
type Request struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	GuidanceScale  float64 `json:"guidance_scale"`
}

const (
	// DefaultTimeout bounds one inference call.
	DefaultTimeout = 20 * time.Second

	// DefaultMaxInFlight bounds concurrent calls to the service across all
	// pipeline workers.
	DefaultMaxInFlight = 2

	// maxResponseBytes guards against a runaway response body.
	maxResponseBytes = 32 << 20
)

// Client issues requests against a single POST endpoint and enforces a
// bounded number of in-flight calls with a per-call timeout.
type Client struct {
	endpoint string
	http     *http.Client
	sem      chan struct{}
	timeout  time.Duration
}

// NewClient builds a client for the given endpoint URL. Zero values for
// timeout and maxInFlight select the defaults.
func NewClient(endpoint string, timeout time.Duration, maxInFlight int) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		sem:      make(chan struct{}, maxInFlight),
		timeout:  timeout,
	}
}

// Generate posts the request and returns the raw image bytes. It blocks
// until an in-flight slot frees up or the context is cancelled. Callers
// must treat any error as a signal to use their local fallback.
func (c *Client) Generate(ctx context.Context, req Request) ([]byte, error) {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return nil, fmt.Errorf("genai: waiting for slot: %w", ctx.Err())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("genai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("genai: call %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genai: %s returned %s", c.endpoint, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("genai: read response: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("genai: empty response from %s", c.endpoint)
	}
	return raw, nil
}
