package driven

import "time"

// TokenAuthenticator mints and validates the bearer tokens that guard the
// admin API surface.
type TokenAuthenticator interface {
	// GenerateToken creates a signed token for the given subject.
	GenerateToken(subject string, ttl time.Duration) (string, error)

	// ValidateToken checks a token and returns its subject.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	ValidateToken(token string) (string, error)
}
