// internal/client/client.go

// Package client talks to the remote analysis service. The service does the
// actual language work (grammar analysis, AI detection, summarization); this
// client only ships text out and issue lists back. All calls are
// context-aware so the analysis scheduler can cancel superseded requests.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"proofpad/internal/issue"
	"proofpad/internal/logger"
)

const (
	checkPath     = "/v1/check"
	detectPath    = "/v1/detect"
	summarizePath = "/v1/summarize"

	defaultTimeout = 30 * time.Second
)

// Client is an analysis-service API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL. A zero timeout falls back
// to a sane default; the per-request context can always cut it shorter.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// analyzeRequest is the shared request body for text-analysis endpoints.
type analyzeRequest struct {
	Text string `json:"text"`
}

// Check submits text for grammar/style analysis and returns the raw issues.
// Sanitization happens later in the engine, not here.
func (c *Client) Check(ctx context.Context, text string) ([]issue.Issue, error) {
	body, err := c.post(ctx, checkPath, analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return issue.DecodeCheck(body)
}

// Detect submits text for AI-likelihood detection. Flagged sentences come
// back as detector-only issues.
func (c *Client) Detect(ctx context.Context, text string) ([]issue.Issue, error) {
	body, err := c.post(ctx, detectPath, analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return issue.DecodeDetect(body)
}

// Summarize streams a summary of text. The service writes the summary
// incrementally; fn receives the progressively larger accumulated summary
// after each chunk, which is all the rendering surface needs (append-only
// buffer, no further processing).
func (c *Client) Summarize(ctx context.Context, text string, fn func(summary string)) error {
	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return fmt.Errorf("encode summarize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+summarizePath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("summarize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("summarize request: status %d", resp.StatusCode)
	}

	var sb strings.Builder
	reader := bufio.NewReader(resp.Body)
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
			fn(sb.String())
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read summarize stream: %w", err)
		}
	}
}

// post sends a JSON body and returns the raw response bytes.
func (c *Client) post(ctx context.Context, path string, reqBody interface{}) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "proofpad")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Debugf("client: close response body for %s: %v", path, err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", path, err)
	}
	return body, nil
}
