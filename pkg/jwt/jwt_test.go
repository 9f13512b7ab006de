package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "advisor@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "advisor@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret", time.Minute).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewManager("other", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	token, err := NewManager("secret", -time.Minute).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewManager("secret", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Minute).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
