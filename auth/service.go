package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrNotLoggedIn is returned when no token pair is stored.
var ErrNotLoggedIn = errors.New("not logged in; run 'lexctl login' first")

// expirySkew refreshes tokens slightly before their actual expiry so that a
// request issued right at the boundary does not race the server clock.
const expirySkew = 30 * time.Second

// Service coordinates token refreshes against the store. At most one refresh
// network call is in flight at any time; concurrent callers that observe a
// stale token attach to the pending refresh and receive its result.
type Service struct {
	Storer    TokenStorer
	Refresher TokenRefresher

	group singleflight.Group
}

// NewService is the constructor for the auth service.
func NewService(storer TokenStorer, refresher TokenRefresher) *Service {
	return &Service{
		Storer:    storer,
		Refresher: refresher,
	}
}

// AccessToken returns the stored access token without touching the network.
// It returns ErrNotLoggedIn when no token pair exists.
func (s *Service) AccessToken() (string, error) {
	token, err := s.Storer.GetTokenRecord()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if token == nil || token.AccessToken == "" {
		return "", ErrNotLoggedIn
	}
	return token.AccessToken, nil
}

// FreshAccessToken returns a usable access token, refreshing proactively when
// the stored one is expired or about to expire.
func (s *Service) FreshAccessToken() (string, error) {
	token, err := s.Storer.GetTokenRecord()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if token == nil {
		return "", ErrNotLoggedIn
	}
	if tokenUsable(token.AccessToken) {
		return token.AccessToken, nil
	}
	return s.Refresh(token.AccessToken)
}

// Refresh obtains a new access token, guaranteeing at most one refresh call
// in flight. staleAccess is the access token the caller found rejected or
// expired: if the store already holds a different token by the time the
// refresh runs, another caller completed the refresh first and its result is
// returned without a second network call.
func (s *Service) Refresh(staleAccess string) (string, error) {
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.doRefresh(staleAccess)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// doRefresh runs inside the singleflight group.
func (s *Service) doRefresh(staleAccess string) (string, error) {
	token, err := s.Storer.GetTokenRecord()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if token == nil || token.RefreshToken == "" {
		return "", ErrNotLoggedIn
	}

	// A refresh that settled between the caller's 401 and this call already
	// replaced the token; hand it out instead of burning the refresh token.
	if token.AccessToken != "" && token.AccessToken != staleAccess {
		return token.AccessToken, nil
	}

	log.Info().Msg("Access token expired or rejected, refreshing...")
	access, refresh, err := s.Refresher.PerformTokenRefresh(token.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to perform token refresh: %w", err)
	}

	token.AccessToken = access
	// The server may rotate only the access token; keep the prior refresh
	// token in that case so the next refresh still works.
	if refresh != "" {
		token.RefreshToken = refresh
	}
	if err := s.Storer.UpsertTokenRecord(token); err != nil {
		return "", fmt.Errorf("failed to save refreshed token: %w", err)
	}
	log.Info().Msg("Token refreshed and saved successfully.")
	return access, nil
}

// Logout clears the stored token pair.
func (s *Service) Logout() error {
	return s.Storer.ClearTokenRecord()
}

// tokenUsable reports whether the access token is present and not within
// expirySkew of its embedded expiry. Opaque (non-JWT) tokens are assumed
// usable; the server is the authority and rejects them with a 401.
func tokenUsable(access string) bool {
	if access == "" {
		return false
	}
	expiresAt, err := tokenExpiry(access)
	if err != nil {
		return true
	}
	return time.Now().Add(expirySkew).Before(expiresAt)
}
