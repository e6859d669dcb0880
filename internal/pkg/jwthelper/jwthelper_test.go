package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken([]byte("secret"), 42, "admin", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken([]byte("secret"), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken([]byte("secret"), 1, "user", time.Minute)
	require.NoError(t, err)

	expired, err := GenerateToken([]byte("secret"), 1, "user", -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   string
		token string
	}{
		{name: "wrong key", key: "other", token: valid},
		{name: "expired", key: "secret", token: expired},
		{name: "unsigned", key: "secret", token: none},
		{name: "garbage", key: "secret", token: "not.a.jwt"},
		{name: "empty", key: "secret", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken([]byte(tt.key), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewManager("access", "refresh", time.Hour, 24*time.Hour)

	access, err := m.IssueAccessToken(7, "user")
	require.NoError(t, err)
	refresh, err := m.IssueRefreshToken(7, "user")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(access)
	assert.NoError(t, err)
	_, err = m.VerifyRefreshToken(refresh)
	assert.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := NewManager("access", "refresh", time.Hour, 24*time.Hour)

	first, err := m.IssueAccessToken(7, "user")
	require.NoError(t, err)
	second, err := m.IssueAccessToken(7, "user")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
