//go:build unit

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"nest/internal/domain/auth"
	"nest/internal/pkg/config"
	"nest/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]auth.Principal

func (s stubValidator) ValidateToken(token string) (auth.Principal, error) {
	p, ok := s[token]
	if !ok {
		return auth.Principal{}, jwt.ErrInvalidToken
	}
	return p, nil
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(stubValidator{
		"v": {Subject: "dash", Role: auth.RoleViewer},
		"o": {Subject: "ops", Role: auth.RoleOperator},
	})

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/read", m.RequireAuth(), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.Subject)
	})
	r.POST("/write", m.RequireAuth(), m.RequireRoleAtLeast(auth.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/misconfigured", m.RequireRoleAtLeast(auth.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		method string
		path   string
		header http.Header
		status int
	}{
		{name: "no header", method: http.MethodGet, path: "/read", status: http.StatusUnauthorized},
		{name: "not a bearer", method: http.MethodGet, path: "/read", header: http.Header{"Authorization": []string{"Basic dTpw"}}, status: http.StatusUnauthorized},
		{name: "unknown token", method: http.MethodGet, path: "/read", header: bearer("x"), status: http.StatusUnauthorized},
		{name: "viewer reads", method: http.MethodGet, path: "/read", header: bearer("v"), status: http.StatusOK},
		{name: "viewer cannot write", method: http.MethodPost, path: "/write", header: bearer("v"), status: http.StatusForbidden},
		{name: "operator writes", method: http.MethodPost, path: "/write", header: bearer("o"), status: http.StatusNoContent},
		{name: "role check without auth", method: http.MethodPost, path: "/misconfigured", header: bearer("o"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, tt.path, tt.header)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "info", TimeZone: "UTC", TimeFormat: "2006-01-02"}, &buf)

	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		SetPrincipal(c, auth.Principal{Subject: "dash", Role: auth.RoleViewer})
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates a request id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/ping", nil)
		id := w.Header().Get(requestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
		assert.Contains(t, buf.String(), "subject=dash")
	})

	t.Run("keeps a caller supplied request id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/ping", http.Header{requestIDHeader: []string{"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
		assert.Contains(t, buf.String(), "request_id=abc-123")
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "2006-01-02"}, &buf)

	r := gin.New()
	r.Use(Recovery(l.Slog()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
	assert.Contains(t, buf.String(), "recovered from panic")
}
