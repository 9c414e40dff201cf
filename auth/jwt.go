package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry decodes the access token payload without verifying the
// signature and returns the embedded expiry. Verification belongs to the
// server; the client only needs the timestamp to decide when to refresh.
func tokenExpiry(access string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(access, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no usable exp claim")
	}
	return exp.Time, nil
}
