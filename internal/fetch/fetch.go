// Package fetch downloads feed documents over HTTP with bot-block
// detection: a 200 response that is actually an HTML page is treated as
// a failure, the same as a timeout or a non-2xx status.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"thaidigest/internal/logger"
)

const (
	connectTimeout = 3 * time.Second
	sniffBytes     = 200
)

type Client struct {
	http      *http.Client
	userAgent string
}

// New builds a fetch client. timeout bounds the whole request/read;
// the connect timeout is fixed and shorter.
func New(timeout time.Duration, userAgent string) *Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// Fetch returns the response body for url, or an error for anything
// that should make the caller skip the feed: network failure, non-2xx
// status, empty body, or a response that sniffs as HTML.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")
	// Accept-Encoding is left to the transport so gzip bodies arrive
	// decompressed.
	req.Close = true

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	logger.Info("fetch",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_type", ct,
		"final_url", resp.Request.URL.String(),
	)

	if looksLikeHTML(ct, body) {
		return nil, fmt.Errorf("non-feed response (looks like HTML) for %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch status %d for %s", resp.StatusCode, url)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body for %s", url)
	}
	return body, nil
}

// looksLikeHTML detects bot-block and error pages served with a feed
// URL: either the declared content type says HTML, or the body opens
// with an HTML document marker.
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	head := body
	if len(head) > sniffBytes {
		head = head[:sniffBytes]
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	lower := strings.ToLower(string(head))
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}
