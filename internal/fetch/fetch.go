package fetch

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

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// BrowserUserAgent is sent by default. Many news sites serve a consent wall or
// an empty shell to unknown agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 8 << 20

// ErrNetwork wraps every failure of Get: malformed or non-HTTP URLs, dial
// errors, timeouts, non-2xx statuses, undecodable bodies and read errors.
// Bodies longer than the cap are cut, not failed; see Page.Truncated.
var ErrNetwork = errors.New("network error")

// Client wraps http.Client with a user agent, a per-request timeout and a
// redirect cap. It performs exactly one attempt per Get.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each request. Zero means DefaultTimeout.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// MaxBodyBytes caps the body size. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Page is a fetched response body decoded to UTF-8.
type Page struct {
	URL         string
	FinalURL    string
	ContentType string
	Body        []byte
	// Truncated is set when the body exceeded MaxBodyBytes and was cut.
	Truncated bool
}

func (c *Client) timeout() time.Duration {
	if c.PerRequestTimeout > 0 {
		return c.PerRequestTimeout
	}
	return DefaultTimeout
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.timeout(), CheckRedirect: c.checkRedirectFunc()}
}

// Get issues a single GET with context, user-agent and timeout. Every
// failure is wrapped with ErrNetwork.
func (c *Client) Get(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return Page{}, fmt.Errorf("%w: new request: %v", ErrNetwork, err)
	}
	// Reject non-HTTP(S) schemes early
	if !isHTTPScheme(req.URL) {
		return Page{}, fmt.Errorf("%w: unsupported URL scheme: %q", ErrNetwork, req.URL.String())
	}
	ua := c.UserAgent
	if ua == "" {
		ua = BrowserUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	ctx, cancel := context.WithTimeout(req.Context(), c.timeout())
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fmt.Errorf("%w: unexpected status: %d", ErrNetwork, resp.StatusCode)
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Page{}, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	truncated := int64(len(raw)) > limit
	if truncated {
		raw = raw[:limit]
		log.Warn().Str("url", rawURL).Int64("limit", limit).Msg("response body truncated")
	}
	// charset.NewReader sniffs <meta charset> when the header is silent
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return Page{}, fmt.Errorf("%w: decode body: %v", ErrNetwork, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Page{}, fmt.Errorf("%w: decode body: %v", ErrNetwork, err)
	}
	log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Int("bytes", len(b)).Dur("duration", time.Since(start)).Msg("fetched page")

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return Page{URL: rawURL, FinalURL: final, ContentType: contentType, Body: b, Truncated: truncated}, nil
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
