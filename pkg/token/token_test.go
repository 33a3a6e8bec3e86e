package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	tokenStr, err := manager.Generate("user-1", "kari@example.no", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := manager.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "kari@example.no", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestManager_VerifyRejectsWrongSecret(t *testing.T) {
	tokenStr, err := NewManager("secret-a", time.Hour).Generate("user-1", "kari@example.no", "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyRejectsExpired(t *testing.T) {
	tokenStr, err := NewManager("test-secret", -time.Minute).Generate("user-1", "kari@example.no", "user")
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
