// Package apiclient talks to the booking backend's REST API.  Base URLs are
// supplied by the caller so tests can point the client at an httptest
// server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/tourfront/internal/logger"
)

// ErrTransport wraps failures that happened before a response arrived.
var ErrTransport = errors.New("transport failure")

// StatusError is returned for any non-2xx response.  The body is not
// inspected.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// Client issues the requests used by the inquiries and gallery views.
type Client struct {
	baseURL      string
	toursBaseURL string
	httpClient   *http.Client
}

// New returns a client for the inquiry API at baseURL and the tours API at
// toursBaseURL.  An empty toursBaseURL falls back to baseURL.
func New(baseURL, toursBaseURL string, timeout time.Duration) *Client {
	if toursBaseURL == "" {
		toursBaseURL = baseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		toursBaseURL: strings.TrimRight(toursBaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// do sends one request.  body, when non-nil, is encoded as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, op, method, url string, body, out interface{}) error {
	log := logger.GetLogger()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("Backend request failed", "op", op, "url", url, "error", err)
		return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warnw("Backend returned non-success status", "op", op, "statusCode", resp.StatusCode)
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debugw("Backend request succeeded", "op", op, "statusCode", resp.StatusCode)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorw("Failed to decode backend response", "op", op, "error", err)
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	log.Debugw("Backend request succeeded", "op", op, "statusCode", resp.StatusCode)
	return nil
}
