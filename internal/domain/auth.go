package domain

import "time"

// TokenPair bundles the credentials issued at login and registration. The
// access token is short-lived; the refresh token only mints new access
// tokens and is never accepted for resource access.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
