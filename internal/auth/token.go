package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/screenengine/backend/internal/models"
)

// hs256MinKeyBytes is the minimum HMAC key size for HS256 (256 bits).
const hs256MinKeyBytes = 32

// keyFillerByte pads short configured secrets up to the HS256 minimum.
// Preserved bit-for-bit for compatibility with already-issued tokens; a
// different filler (or refusing short secrets here) would invalidate every
// token in the wild. Weak practice, documented rather than fixed.
const keyFillerByte = '0'

// TokenCodec issues and parses the signed bearer tokens. The signing key is
// derived once at construction and is read-only afterwards, so a single
// codec is safe for concurrent use by any number of requests.
type TokenCodec struct {
	signingKey []byte
	ttl        time.Duration
}

// NewTokenCodec derives the process-wide signing key from the configured
// secret and fixes the token TTL. There is no key rotation: changing the
// secret invalidates all previously issued tokens.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		signingKey: deriveSigningKey(secret),
		ttl:        ttl,
	}
}

func deriveSigningKey(secret string) []byte {
	key := []byte(secret)
	for len(key) < hs256MinKeyBytes {
		key = append(key, keyFillerByte)
	}
	return key
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue creates a signed compact token for the principal: subject is the
// username, plus userId, roles, iat and exp.
func (tc *TokenCodec) Issue(principal *models.Principal) (string, error) {
	now := time.Now()

	claims := &models.TokenClaims{
		UserID: principal.UserID,
		Roles:  principal.Authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature over the full token and decodes its claims.
// Bad signature, malformed structure, expiry and missing required claims all
// collapse into ErrTokenInvalid; the underlying cause is wrapped for logging
// only and must not reach external callers.
func (tc *TokenCodec) Parse(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tc.signingKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing identity claims", models.ErrTokenInvalid)
	}

	return claims, nil
}

// IsExpired reports whether the token's expiry is in the past. Fail-closed:
// a token that does not parse for any reason is treated as expired, never as
// unknown.
func (tc *TokenCodec) IsExpired(tokenString string) bool {
	claims, err := tc.Parse(tokenString)
	if err != nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}
