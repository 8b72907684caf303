//go:build e2e

package helper

import (
	"testing"

	"nest/internal/domain/auth"
	"nest/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// TokenHelper issues service tokens signed with the application's key.
type TokenHelper struct {
	svc *jwt.Service
}

func NewTokenHelper(svc *jwt.Service) *TokenHelper {
	return &TokenHelper{svc: svc}
}

func (h *TokenHelper) Token(t *testing.T, role auth.Role) string {
	t.Helper()

	token, err := h.svc.GenerateToken("e2e-"+role.String(), role)
	require.NoError(t, err)
	return token
}
