package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateToken(t *testing.T) {
	t.Run("generate valid token", func(t *testing.T) {
		userID := int64(123)
		token, err := GenerateToken(userID, model.RoleStudent, testSecret, 24)

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, model.RoleStudent, claims.Role)
	})

	t.Run("generate token with different user IDs", func(t *testing.T) {
		token1, err := GenerateToken(1, model.RoleStudent, testSecret, 24)
		require.NoError(t, err)

		token2, err := GenerateToken(2, model.RoleStudent, testSecret, 24)
		require.NoError(t, err)

		assert.NotEqual(t, token1, token2)
	})

	t.Run("role round trip", func(t *testing.T) {
		token, err := GenerateToken(7, model.RoleLibrarian, testSecret, 24)
		require.NoError(t, err)

		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, model.RoleLibrarian, claims.Role)
	})
}

func TestParseToken(t *testing.T) {
	t.Run("parse with wrong secret", func(t *testing.T) {
		token, err := GenerateToken(1, model.RoleStudent, testSecret, 24)
		require.NoError(t, err)

		_, err = ParseToken(token, "wrong-secret")
		assert.Error(t, err)
	})

	t.Run("parse garbage", func(t *testing.T) {
		_, err := ParseToken("not.a.token", testSecret)
		assert.Error(t, err)
	})

	t.Run("parse expired token", func(t *testing.T) {
		// 手工签发一个已过期的 token
		claims := &Claims{
			UserID: 1,
			Role:   model.RoleStudent,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			},
		}
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ParseToken(tokenString, testSecret)
		assert.Error(t, err)
	})

	t.Run("reject non-HMAC signing method", func(t *testing.T) {
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseToken(tokenString, testSecret)
		assert.Error(t, err)
	})
}
