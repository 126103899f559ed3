package portal

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent identifies the generator to the help portal.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Zscaler-Release-RSS/1.0; +https://www.zscaler.com)"

// Help portal HTTP timeouts so a single hung request doesn't hold a worker
// slot indefinitely.
const (
	portalConnectTimeout  = 10 * time.Second
	portalResponseTimeout = 25 * time.Second // time to first response header
)

// StatusError reports a non-2xx response for a URL.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// Client wraps an http.Client tuned for probing and fetching portal feeds.
// The idle pool is sized to the worker-pool width so concurrent probes reuse
// connections instead of re-establishing them per request.
type Client struct {
	http *http.Client
}

// NewClient builds a Client with a total request timeout and an idle
// connection pool of poolSize per host.
func NewClient(timeout time.Duration, poolSize int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if poolSize < 1 {
		poolSize = 1
	}
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: portalConnectTimeout}).DialContext,
		ResponseHeaderTimeout: portalResponseTimeout,
		MaxIdleConns:          poolSize,
		MaxIdleConnsPerHost:   poolSize,
	}
	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// NewClientWithHTTP builds a Client around a caller-supplied http.Client (tests).
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{http: httpClient}
}

// Exists issues a HEAD request for url and reports whether it resolved 2xx.
// Servers that reject HEAD (405/501) get a one-byte ranged GET instead.
// A non-2xx status is (false, nil); only transport failures return an error.
func (c *Client) Exists(ctx context.Context, url string) (bool, error) {
	code, err := c.headStatus(ctx, url)
	if err != nil {
		return false, err
	}
	if code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented {
		code, err = c.rangedGetStatus(ctx, url)
		if err != nil {
			return false, err
		}
	}
	return code >= 200 && code < 300, nil
}

// Get fetches the body for url. Non-2xx responses return a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) headStatus(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// rangedGetStatus asks for the first byte only; we care about the status, not
// the body.
func (c *Client) rangedGetStatus(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Range", "bytes=0-0")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1))
	resp.Body.Close()
	if resp.StatusCode == http.StatusPartialContent {
		return http.StatusOK, nil
	}
	return resp.StatusCode, nil
}
