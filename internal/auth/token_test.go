package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshelf/storefront/internal/models"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken([]byte("test-key"), time.Hour)

	user := &models.User{
		ID:    "u1",
		Email: "u1@example.com",
		Role:  models.RoleAdmin,
	}

	tokenString, err := at.CreateToken(user, "sess-1")
	require.NoError(t, err)

	payload, err := at.VerifyToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, "sess-1", payload.SessionID)
	assert.Equal(t, "u1@example.com", payload.Email)
	assert.Equal(t, models.RoleAdmin, payload.Role)
}

func TestAuthToken_VerifyToken(t *testing.T) {
	at := NewAuthToken([]byte("test-key"), time.Hour)

	t.Run("wrong key is rejected", func(t *testing.T) {
		other := NewAuthToken([]byte("other-key"), time.Hour)
		tokenString, err := other.CreateToken(&models.User{ID: "u1"}, "sess-1")
		require.NoError(t, err)

		_, err = at.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewAuthToken([]byte("test-key"), -time.Minute)
		tokenString, err := expired.CreateToken(&models.User{ID: "u1"}, "sess-1")
		require.NoError(t, err)

		_, err = at.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = at.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := at.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}
