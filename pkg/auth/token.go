// Package auth issues and verifies the bearer tokens carrying the session principal.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
)

// DefaultTTL is the validity of tokens generated without explicit TTL.
const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("the token is invalid or expired")

// Claims are the claims of a session token. The subject is the principal ID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken returns a signed HS256 token for the principal.
func GenerateToken(secret []byte, p backend.Principal, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := &Claims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the token and returns the principal it was issued for.
func ParseToken(secret []byte, token string) (backend.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return backend.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return backend.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenInvalidClaims)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return backend.Principal{}, fmt.Errorf("%w: subject %q is not a user ID", ErrInvalidToken, claims.Subject)
	}

	return backend.Principal{ID: id, Email: claims.Email}, nil
}
