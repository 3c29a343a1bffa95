package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token carries no exp claim")

// TokenExpiry reads the embedded expiry out of a bearer token. The
// signature is the backend's business; the client only needs the exp claim,
// so the token is decoded without verification.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token is unusable at the given instant.
// Malformed tokens and tokens without an exp claim count as expired:
// fail closed, never open.
func Expired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return !exp.After(now)
}
