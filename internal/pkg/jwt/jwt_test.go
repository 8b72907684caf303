//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"nest/internal/domain/auth"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)

	token, err := svc.GenerateToken("support-desk", auth.RoleOperator)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "support-desk", claims.Subject)
	assert.Equal(t, "operator", claims.Role)
}

func TestService_Rejects(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)

	t.Run("expired", func(t *testing.T) {
		expired := jwt.NewService("secret", -time.Minute)
		token, err := expired.GenerateToken("svc", auth.RoleViewer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrExpiredToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken("svc", auth.RoleViewer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "svc",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})
}
