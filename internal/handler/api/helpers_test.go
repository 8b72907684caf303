//go:build unit

package api_test

import (
	"io"
	"log/slog"

	"nest/internal/domain/auth"
	"nest/internal/handler/middleware"
	"nest/internal/pkg/jwt"
)

const (
	viewerToken   = "viewer-token"
	operatorToken = "operator-token"
	adminToken    = "admin-token"
)

type stubValidator map[string]auth.Principal

func (s stubValidator) ValidateToken(token string) (auth.Principal, error) {
	p, ok := s[token]
	if !ok {
		return auth.Principal{}, jwt.ErrInvalidToken
	}
	return p, nil
}

func newAuthMiddleware() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(stubValidator{
		viewerToken:   {Subject: "dashboard", Role: auth.RoleViewer},
		operatorToken: {Subject: "support", Role: auth.RoleOperator},
		adminToken:    {Subject: "oncall", Role: auth.RoleAdmin},
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
