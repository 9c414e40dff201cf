package client

import (
	"net/http"
	"strings"
	"time"
)

// SessionProvider supplies bearer tokens and coordinates refreshes. Implemented
// by auth.Service; tests substitute stubs.
type SessionProvider interface {
	// AccessToken returns the current access token without network I/O.
	AccessToken() (string, error)
	// FreshAccessToken returns a usable access token, refreshing first when
	// the stored one is expired or about to expire.
	FreshAccessToken() (string, error)
	// Refresh obtains a new access token, deduplicating concurrent calls.
	// staleAccess is the token the caller saw rejected.
	Refresh(staleAccess string) (string, error)
	// Logout clears the stored token pair.
	Logout() error
}

// Client talks to the LexiBel API. All domain calls go through its request
// executor, which attaches auth headers and transparently retries once after
// a coordinated token refresh.
type Client struct {
	baseURL string
	tenant  string
	http    *http.Client
	session SessionProvider

	// onSessionExpired runs after an unrecoverable auth failure, once the
	// token store has been cleared. The CLI uses it to tell the user to log
	// in again.
	onSessionExpired func()

	limiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithTenant scopes every request to a tenant via the X-Tenant-ID header.
func WithTenant(tenant string) Option {
	return func(c *Client) { c.tenant = tenant }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithSessionExpiredHook registers a callback invoked when the session is
// terminally expired.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New creates a Client for the API at baseURL. session may be nil for
// unauthenticated use (login only).
func New(baseURL string, session SessionProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string { return c.baseURL }

// streaming returns a copy of the client whose HTTP client has no overall
// timeout. SSE connections and downloads stay open far longer than any
// sensible request timeout.
func (c *Client) streaming() *Client {
	sc := *c
	sc.http = &http.Client{Transport: c.http.Transport}
	return &sc
}

// SetDownloadRateLimit bounds document downloads to the given bytes per
// second. A non-positive value removes the limit.
func (c *Client) SetDownloadRateLimit(bytesPerSecond int64) {
	if bytesPerSecond <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = newRateLimiter(bytesPerSecond)
}
