// Package datadog ships packed series payloads to the Datadog v1
// metrics API.
package datadog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vshulcz/Telemetra/internal/ports"
)

// Client posts payload bodies to {host}/series. Bodies arrive already
// serialized (and compressed when gzip is on); the client only adds
// headers and fans the requests out.
type Client struct {
	key  string
	base *url.URL
	hc   *http.Client
	gzip bool
}

var _ ports.SeriesSender = (*Client)(nil)

// New normalizes the API host, validates the key, and returns a Client.
func New(apiHost string, hc *http.Client, apiKey string, gzip bool) (*Client, error) {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("api key is required")
	}
	u, err := url.Parse(normalizeBase(apiHost))
	if err != nil {
		return nil, err
	}
	return &Client{key: key, base: u, hc: hc, gzip: gzip}, nil
}

func normalizeBase(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return strings.TrimRight(s, "/")
	}
	return "https://" + strings.TrimRight(s, "/")
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

// Send posts every payload concurrently and waits for all of them.
// The first error is returned after the join; requests already in
// flight run to completion rather than being cancelled, so delivery
// may be partial (at-most-once). An empty payload list is a no-op.
func (c *Client) Send(ctx context.Context, payloads [][]byte) error {
	if len(payloads) == 0 {
		return nil
	}
	var g errgroup.Group
	for _, body := range payloads {
		g.Go(func() error {
			return c.post(ctx, body)
		})
	}
	return g.Wait()
}

func (c *Client) post(ctx context.Context, body []byte) (retErr error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/series"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DD-API-KEY", c.key)
	if c.gzip {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("post series: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close response body: %w", cerr)
		}
	}()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &httpStatusError{code: resp.StatusCode, msg: fmt.Sprintf("server status: %s", resp.Status)}
	}
	return nil
}

type httpStatusError struct {
	code int
	msg  string
}

func (e *httpStatusError) Error() string {
	return e.msg
}
