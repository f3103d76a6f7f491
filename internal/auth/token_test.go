package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", "wodlog", 30*24*time.Hour)
	raw, err := issuer.Issue(42)
	require.NoError(t, err)

	id, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", "wodlog", 30*24*time.Hour)
	issuer.now = func() time.Time { return now }
	raw, err := issuer.Issue(1)
	require.NoError(t, err)

	now = now.Add(29 * 24 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.NoError(t, err)

	now = now.Add(2 * 24 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", "wodlog", time.Hour)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	cases := map[string]string{
		"malformed":     "not.a.token",
		"other secret":  sign(jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "1", Issuer: "wodlog", ExpiresAt: exp}),
		"other alg":     sign(jwt.SigningMethodHS512, []byte("secret"), jwt.RegisteredClaims{Subject: "1", Issuer: "wodlog", ExpiresAt: exp}),
		"none alg":      sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: "1", Issuer: "wodlog", ExpiresAt: exp}),
		"other issuer":  sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "1", Issuer: "x", ExpiresAt: exp}),
		"no expiry":     sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "1", Issuer: "wodlog"}),
		"bad subject":   sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "abc", Issuer: "wodlog", ExpiresAt: exp}),
		"empty subject": sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Issuer: "wodlog", ExpiresAt: exp}),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
