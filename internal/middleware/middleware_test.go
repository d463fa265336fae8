package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.Use(handlers...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user")
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func doRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestEngine(AuthMiddleware(testSecret, "pocket_ledger"))

	valid, err := utils.GenerateJWT("user-1", "", testSecret, time.Hour, "pocket_ledger")
	require.NoError(t, err)
	w := doRequest(r, valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")

	expired, err := utils.GenerateJWT("user-1", "", testSecret, -time.Minute, "pocket_ledger")
	require.NoError(t, err)
	w = doRequest(r, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")

	forged, err := utils.GenerateJWT("user-1", "", "another-secret", time.Hour, "pocket_ledger")
	require.NoError(t, err)
	w = doRequest(r, forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newTestEngine(AuthMiddleware(testSecret, ""), RequireAdmin())

	member, err := utils.GenerateJWT("user-1", "", testSecret, time.Hour, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, member).Code)

	admin, err := utils.GenerateJWT("ops", utils.RoleAdmin, testSecret, time.Hour, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, admin).Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)
	r := newTestEngine(RateLimit(lim), func(c *gin.Context) {
		c.Set(string(userIDKey), "user-1")
		c.Next()
	})

	assert.Equal(t, http.StatusOK, doRequest(r, "").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "").Code)

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestRequestIDPropagation(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		c.Set(string(userIDKey), "user-1")
		c.Next()
	})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "3b241101-e2bb-4255-8caf-4136c566a962")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", w.Header().Get(RequestIDHeader))
}
