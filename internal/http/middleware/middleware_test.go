package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"teamboard/internal/domain"
	"teamboard/internal/http/dto"
	"teamboard/internal/http/resp"
	"teamboard/internal/model"
)

type authorizerFunc func(ctx context.Context, ident model.Identity) error

func (f authorizerFunc) Authorize(ctx context.Context, ident model.Identity) error {
	return f(ctx, ident)
}

func newEngine(logger *zap.Logger, auth Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ZapLogger(logger), ZapRecovery(logger))
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	api := r.Group("/api", Identity())
	api.GET("/me", func(c *gin.Context) { c.JSON(http.StatusOK, CurrentIdentity(c)) })
	r.Group("/admin", Identity(), RequireAdmin(auth, logger)).GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func serve(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity(t *testing.T) {
	r := newEngine(zap.NewNop(), nil)

	w := serve(r, "/api/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, resp.CodeUnauthorized, body.Code)

	w = serve(r, "/api/me", map[string]string{HeaderUserID: " u-1 ", HeaderUserEmail: "a@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var ident model.Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ident))
	require.Equal(t, "u-1", ident.UserID)
	require.Equal(t, "a@example.com", ident.Email)
}

func TestRequireAdmin(t *testing.T) {
	auth := authorizerFunc(func(_ context.Context, ident model.Identity) error {
		if ident.UserID == "admin" {
			return nil
		}
		return domain.ErrForbidden
	})
	r := newEngine(zap.NewNop(), auth)

	require.Equal(t, http.StatusNoContent, serve(r, "/admin/ping", map[string]string{HeaderUserID: "admin"}).Code)
	require.Equal(t, http.StatusForbidden, serve(r, "/admin/ping", map[string]string{HeaderUserID: "someone"}).Code)
}

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core), nil)

	serve(r, "/api/me?secret=s3cr3t", map[string]string{HeaderUserID: "u-1"})
	serve(r, "/api/me", nil)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "/api/me", entries[0].ContextMap()["path"])
	require.Equal(t, "u-1", entries[0].ContextMap()["user_id"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestZapRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core), nil)

	w := serve(r, "/panic", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, resp.CodeInternalError, body.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
