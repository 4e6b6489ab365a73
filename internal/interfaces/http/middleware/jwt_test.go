package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbooks/backend/internal/infrastructure/auth"
	"github.com/finbooks/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret-key-with-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "finbooks-test",
	})
}

func issueTokenPair(t *testing.T, svc *auth.JWTService) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "alice",
		Role:     "admin",
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": GetJWTTenantID(c),
			"user_id":   GetJWTUserID(c),
			"username":  GetJWTUsername(c),
			"role":      GetJWTRole(c),
		})
	})
	r.GET("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()

	t.Run("missing header yields 401", func(t *testing.T) {
		r := newProtectedRouter(DefaultJWTConfig(svc))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header yields 401", func(t *testing.T) {
		r := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		r := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is rejected on protected routes", func(t *testing.T) {
		pair, _ := issueTokenPair(t, svc)
		r := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		pair, input := issueTokenPair(t, svc)
		r := newProtectedRouter(DefaultJWTConfig(svc))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), input.TenantID.String())
		assert.Contains(t, w.Body.String(), input.UserID.String())
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		r := newProtectedRouter(DefaultJWTConfig(svc))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddleware_SessionRevocation(t *testing.T) {
	svc := newTestJWTService()
	sessions := auth.NewInMemorySessionStore(time.Hour)
	cfg := DefaultJWTConfig(svc)
	cfg.SessionStore = sessions

	pair, input := issueTokenPair(t, svc)
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, &auth.Session{
		Token:    pair.AccessToken,
		TenantID: input.TenantID.String(),
		UserID:   input.UserID.String(),
		Username: input.Username,
	}))

	r := newProtectedRouter(cfg)

	t.Run("live session passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cleared session revokes a still-valid token", func(t *testing.T) {
		require.NoError(t, sessions.Clear(ctx, pair.AccessToken))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
