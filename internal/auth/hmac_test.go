package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentreceipt/pkg/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-entropy"

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims *Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestHMACVerifier_IssuedToken(t *testing.T) {
	token, err := IssueToken(testSecret, &types.Identity{UserID: 42, Email: "jane@example.com"}, time.Hour)
	require.NoError(t, err)

	identity, err := NewHMACVerifier(testSecret).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &types.Identity{UserID: 42, Email: "jane@example.com"}, identity)
}

func TestHMACVerifier_SubjectFallback(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, testSecret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	identity, err := NewHMACVerifier(testSecret).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(17), identity.UserID)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, "other-secret", &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}})},
		{"wrong method", sign(t, jwt.SigningMethodHS384, testSecret, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}})},
		{"expired", sign(t, jwt.SigningMethodHS256, testSecret, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}})},
		{"no expiry", sign(t, jwt.SigningMethodHS256, testSecret, &Claims{UserID: 1})},
		{"no user", sign(t, jwt.SigningMethodHS256, testSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}})},
		{"non numeric subject", sign(t, jwt.SigningMethodHS256, testSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "jane", ExpiresAt: future}})},
		{"negative user", sign(t, jwt.SigningMethodHS256, testSecret, &Claims{UserID: -3, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}})},
	}

	verifier := NewHMACVerifier(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Verify(context.Background(), tt.token)
			assert.Nil(t, identity)
			assert.True(t, errors.Is(err, types.ErrUnauthorized), "got %v", err)
		})
	}
}
