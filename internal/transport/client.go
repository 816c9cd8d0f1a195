// ABOUTME: HTTP transport for the heartbeat protocol.
// ABOUTME: One blocking PATCH round trip per call with fixed JSON headers.

package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues heartbeat requests. It is safe for use from a single
// goroutine at a time; the agent's heartbeat loop is the only caller.
type Client struct {
	http *http.Client
}

// New returns a Client. A zero timeout means no client-side deadline: a
// hung orchestrator stalls the heartbeat cycle until the connection drops.
func New(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Patch sends body to url as an HTTP PATCH and returns the status code and
// response body. Non-2xx statuses are returned to the caller, not treated
// as errors; only transport-level failures produce a non-nil error.
func (c *Client) Patch(url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("building heartbeat request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("sending heartbeat: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading heartbeat response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
