package auth

import "github.com/lexibel/lexctl/db"

// TokenStorer defines the contract for any component that can store and retrieve a token pair.
type TokenStorer interface {
	GetTokenRecord() (*db.Token, error)
	UpsertTokenRecord(token *db.Token) error
	ClearTokenRecord() error
}

// TokenRefresher defines the contract for any component that can perform a token refresh action.
// newRefreshToken is empty when the server rotated only the access token.
type TokenRefresher interface {
	PerformTokenRefresh(refreshToken string) (accessToken string, newRefreshToken string, err error)
}
