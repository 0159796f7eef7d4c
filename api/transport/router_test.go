package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSignerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", SignerAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"signer": string(SignerFromContext(c))})
	})
	return r
}

func TestSignerAuthMiddleware(t *testing.T) {
	router := setupSignerRouter(t)

	t.Run("Happy path - signer is stored on the context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("x-signer-key", "voter-1")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), "voter-1")
	})

	t.Run("Unhappy path - missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - oversize identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("x-signer-key", strings.Repeat("x", 33))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - identity with whitespace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("x-signer-key", "voter 1")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestSignerFromContextWithoutMiddleware(t *testing.T) {
	logging.Log = logrus.New()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, SignerFromContext(c))
}

func TestRequestIDMiddleware(t *testing.T) {
	logging.Log = logrus.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Header().Get("X-Request-ID"), 12)
}

func TestAdminAuthMiddleware(t *testing.T) {
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Happy path - valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("x-admin-token", "secret")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("Unhappy path - wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("x-admin-token", "wrong")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestCORSMiddlewareAllowsSignerHeader(t *testing.T) {
	logging.Log = logrus.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusNoContent, res.Code)
	assert.Contains(t, res.Header().Get("Access-Control-Allow-Headers"), "x-signer-key")
}
