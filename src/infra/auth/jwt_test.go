package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palpitefc/src/core/domain"
)

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	t.Parallel()
	a := NewJWTAuthenticator("test-secret", "palpitefc")

	token, err := a.Issue(42, time.Hour)
	require.NoError(t, err)

	userID, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	t.Parallel()
	a := NewJWTAuthenticator("test-secret", "palpitefc")

	sign := func(method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "palpitefc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := valid()
	noExpiry.ExpiresAt = nil
	otherIssuer := valid()
	otherIssuer.Issuer = "someone-else"
	badSubject := valid()
	badSubject.Subject = "torcedor"

	tests := map[string]string{
		"garbage":       "not-a-token",
		"wrong secret":  sign(jwt.SigningMethodHS256, []byte("other"), valid()),
		"wrong method":  sign(jwt.SigningMethodHS512, []byte("test-secret"), valid()),
		"expired":       sign(jwt.SigningMethodHS256, []byte("test-secret"), expired),
		"no expiry":     sign(jwt.SigningMethodHS256, []byte("test-secret"), noExpiry),
		"other issuer":  sign(jwt.SigningMethodHS256, []byte("test-secret"), otherIssuer),
		"numeric check": sign(jwt.SigningMethodHS256, []byte("test-secret"), badSubject),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), token)
			require.Error(t, err)
			assert.True(t, domain.IsUnauthorized(err))
		})
	}
}
