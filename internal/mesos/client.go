package mesos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request to a master or agent endpoint.
const DefaultTimeout = 5 * time.Second

// client is the HTTP transport shared by the master and its agents.
type client struct {
	http *http.Client
}

func newClient(timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &client{
		http: &http.Client{Timeout: timeout},
	}
}

// fetch GETs baseURL/path with optional query parameters and returns the
// response body. Connection-level failures come back as *UnreachableError;
// non-2xx statuses as plain errors.
func (c *client) fetch(ctx context.Context, baseURL, path string, query url.Values) ([]byte, error) {
	u := joinURL(baseURL, path)
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UnreachableError{URL: baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{URL: baseURL, Err: err}
	}
	return body, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
