package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-tokens"

func TestService_IssueAndVerify(t *testing.T) {
	svc := NewService(testSecret, 30*time.Minute)

	tokenString, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestService_Verify_Expired(t *testing.T) {
	svc := NewService(testSecret, -1*time.Minute)

	tokenString, err := svc.Issue(42)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	svc := NewService(testSecret, 30*time.Minute)
	other := NewService("a-completely-different-secret", 30*time.Minute)

	tokenString, err := other.Issue(42)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_Malformed(t *testing.T) {
	svc := NewService(testSecret, 30*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiI0MiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
