package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "test-secret", TokenTTL)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", TokenTTL)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	require.Error(t, err)
}

func TestTokenEmptySecret(t *testing.T) {
	_, err := GenerateToken(uuid.New(), "", TokenTTL)
	require.Error(t, err)

	_, err = ValidateToken("whatever", "")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super-secreta")
	require.NoError(t, err)
	require.NotEqual(t, "super-secreta", hash)

	require.NoError(t, VerifyPassword(hash, "super-secreta"))
	require.Error(t, VerifyPassword(hash, "errada"))
}
