package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	headerTenant      = "X-Tenant-ID"
	headerRequestID   = "X-Request-ID"
	headerIdempotency = "Idempotency-Key"
)

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Do is the raw-response escape hatch: it runs the full executor (auth
// header, refresh-and-retry, error translation) but hands back the response
// body unparsed. The caller owns closing it.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, method, path, payload, nil)
}

// doJSON runs the executor and decodes the response body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	resp, err := c.execute(ctx, method, path, payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// execute performs one request with auth attached and, on a 401, refreshes
// the token through the session provider and retries exactly once. A second
// 401, or a failed refresh, terminates the session.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte, extraHeaders http.Header) (*http.Response, error) {
	token := c.currentToken()

	// The idempotency key must survive the post-refresh retry so the server
	// can collapse duplicates.
	var idempotencyKey string
	if method != http.MethodGet && method != http.MethodHead {
		idempotencyKey = uuid.NewString()
	}

	resp, err := c.attempt(ctx, method, path, payload, token, idempotencyKey, extraHeaders)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session != nil && token != "" {
		drainAndClose(resp)

		newToken, err := c.session.Refresh(token)
		if err != nil {
			log.Warn().Err(err).Msg("Token refresh failed, terminating session")
			c.expireSession()
			return nil, fmt.Errorf("token refresh failed: %w", ErrSessionExpired)
		}

		resp, err = c.attempt(ctx, method, path, payload, newToken, idempotencyKey, extraHeaders)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// The refreshed token was rejected too. Stop here rather than
			// looping refresh cycles.
			drainAndClose(resp)
			c.expireSession()
			return nil, fmt.Errorf("retried request still unauthorized: %w", ErrSessionExpired)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}
	return resp, nil
}

// attempt sends a single request, retrying transport failures and 5xx
// responses for GETs with a doubling backoff.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, token, idempotencyKey string, extraHeaders http.Header) (*http.Response, error) {
	maxAttempts := 1
	if method == http.MethodGet || method == http.MethodHead {
		maxAttempts = 3
	}
	backoff := 1 * time.Second

	var resp *http.Response
	var err error
	for i := 0; i < maxAttempts; i++ {
		var req *http.Request
		req, err = c.newRequest(ctx, method, path, payload, token, idempotencyKey, extraHeaders)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("method", method).Str("path", path).Msg("Sending HTTP request")
		resp, err = c.http.Do(req)
		if err != nil {
			if i+1 < maxAttempts {
				log.Warn().Err(err).Int("attempt", i+1).Int("max_attempts", maxAttempts).Msg("Request failed, retrying...")
				if serr := sleepCtx(ctx, backoff); serr != nil {
					return nil, serr
				}
				backoff *= 2
				continue
			}
			return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
		}

		if resp.StatusCode >= 500 && i+1 < maxAttempts {
			log.Warn().Int("status", resp.StatusCode).Int("attempt", i+1).Int("max_attempts", maxAttempts).Msg("Server error, retrying...")
			drainAndClose(resp)
			if serr := sleepCtx(ctx, backoff); serr != nil {
				return nil, serr
			}
			backoff *= 2
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
}

// newRequest builds one HTTP request with the standard header set.
func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte, token, idempotencyKey string, extraHeaders http.Header) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to create request")
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	if c.tenant != "" {
		req.Header.Set(headerTenant, c.tenant)
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	if idempotencyKey != "" {
		req.Header.Set(headerIdempotency, idempotencyKey)
	}
	for key, values := range extraHeaders {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// currentToken returns a usable access token, refreshing proactively when the
// stored one carries an expired exp claim. When the proactive path fails the
// stored token is sent as-is and the 401 handling in execute decides; requests
// go out unauthenticated when no token exists at all (the server answers 401
// and the caller sees a clean error).
func (c *Client) currentToken() string {
	if c.session == nil {
		return ""
	}
	token, err := c.session.FreshAccessToken()
	if err == nil {
		return token
	}
	log.Debug().Err(err).Msg("Proactive token refresh unavailable, using stored token")
	token, err = c.session.AccessToken()
	if err != nil {
		return ""
	}
	return token
}

// expireSession clears the token store and notifies the hook. Refresh already
// failed at this point, so a store error only gets logged.
func (c *Client) expireSession() {
	if c.session != nil {
		if err := c.session.Logout(); err != nil {
			log.Error().Err(err).Msg("Failed to clear tokens after auth failure")
		}
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, nil
}

func drainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, 1024*1024)
	_ = resp.Body.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
