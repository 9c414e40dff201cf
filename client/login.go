package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// TokenPair is the credential pair minted by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Login exchanges email/password for a token pair via POST /auth/login.
// Persisting the pair is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password cannot be empty")
	}

	var pair TokenPair
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	log.Info().Msg("Logged in successfully")
	return &pair, nil
}

// Refresher performs the token refresh network call. It deliberately holds no
// session so a refresh can never recurse into another refresh.
type Refresher struct {
	client *Client
}

// NewRefresher creates a Refresher against the same API host as c.
func NewRefresher(c *Client) *Refresher {
	return &Refresher{client: New(c.baseURL, nil, WithHTTPClient(c.http), WithTenant(c.tenant))}
}

// PerformTokenRefresh submits the refresh token to POST /auth/refresh. The
// returned refresh token is empty when the server rotated only the access
// token.
func (r *Refresher) PerformTokenRefresh(refreshToken string) (string, string, error) {
	var pair TokenPair
	err := r.client.doJSON(context.Background(), http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &pair)
	if err != nil {
		return "", "", fmt.Errorf("refresh request failed: %w", err)
	}
	if pair.AccessToken == "" {
		return "", "", fmt.Errorf("refresh response carried no access token")
	}
	return pair.AccessToken, pair.RefreshToken, nil
}
