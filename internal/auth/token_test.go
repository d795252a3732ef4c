package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/screenengine/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrincipal() *models.Principal {
	return &models.Principal{
		UserID:      42,
		Username:    "alice",
		Authorities: []string{"ROLE_USER", "ROLE_ADMIN"},
	}
}

func TestTokenCodec_IssueParseRoundTrip(t *testing.T) {
	codec := NewTokenCodec("a-perfectly-reasonable-signing-secret", time.Hour)

	token, err := codec.Issue(testPrincipal())
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.Roles)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenCodec_ExpiredTokenRejected(t *testing.T) {
	codec := NewTokenCodec("a-perfectly-reasonable-signing-secret", -time.Minute)

	token, err := codec.Issue(testPrincipal())
	require.NoError(t, err)

	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
	assert.True(t, codec.IsExpired(token))
}

func TestTokenCodec_SignatureTamperRejected(t *testing.T) {
	codec := NewTokenCodec("a-perfectly-reasonable-signing-secret", time.Hour)

	token, err := codec.Issue(testPrincipal())
	require.NoError(t, err)

	// Mutate one byte of the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Parse(string(tampered))
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
	assert.True(t, codec.IsExpired(string(tampered)))
}

func TestTokenCodec_WrongKeyRejected(t *testing.T) {
	issuer := NewTokenCodec("a-perfectly-reasonable-signing-secret", time.Hour)
	verifier := NewTokenCodec("a-completely-different-signing-key!!", time.Hour)

	token, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokenCodec_ShortSecretPaddedDeterministically(t *testing.T) {
	short := "tiny"
	padded := short + strings.Repeat("0", hs256MinKeyBytes-len(short))

	issuer := NewTokenCodec(short, time.Hour)
	verifier := NewTokenCodec(padded, time.Hour)

	token, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	claims, err := verifier.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenCodec_MissingIdentityClaimsRejected(t *testing.T) {
	codec := NewTokenCodec("a-perfectly-reasonable-signing-secret", time.Hour)

	// Structurally valid, correctly signed, but without sub/userId.
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := bare.SignedString(codec.signingKey)
	require.NoError(t, err)

	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokenCodec_MalformedTokenRejected(t *testing.T) {
	codec := NewTokenCodec("a-perfectly-reasonable-signing-secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := codec.Parse(garbage)
		assert.ErrorIs(t, err, models.ErrTokenInvalid, "token %q", garbage)
		assert.True(t, codec.IsExpired(garbage), "token %q", garbage)
	}
}
