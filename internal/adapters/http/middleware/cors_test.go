package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(config *CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/test", func(c *gin.Context) {
		c.String(200, "ok")
	})
	router.NoRoute(func(c *gin.Context) {
		c.String(404, "not found")
	})
	return router
}

func assertCORSHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS(t *testing.T) {
	t.Run("HeadersOnSuccessResponse", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assertCORSHeaders(t, w)
	})

	t.Run("HeadersWithoutOriginHeader", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		// No Origin header - headers must still be present
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assertCORSHeaders(t, w)
	})

	t.Run("HeadersOnErrorResponse", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assertCORSHeaders(t, w)
	})

	t.Run("PreflightReturns200EmptyBody", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assertCORSHeaders(t, w)
	})

	t.Run("PreflightAnyPath", func(t *testing.T) {
		router := newCORSRouter(DefaultCORSConfig())

		for _, path := range []string{"/", "/test", "/deep/nested/path", "/missing"} {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
			assert.Empty(t, w.Body.String(), "path %s", path)
		}
	})

	t.Run("WithNilConfig", func(t *testing.T) {
		router := newCORSRouter(nil) // Should use default

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assertCORSHeaders(t, w)
	})

	t.Run("CustomConfig", func(t *testing.T) {
		config := &CORSConfig{
			AllowOrigin:  "http://localhost:3000",
			AllowMethods: []string{http.MethodGet},
			AllowHeaders: []string{"Content-Type", "Accept"},
		}
		router := newCORSRouter(config)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Accept", w.Header().Get("Access-Control-Allow-Headers"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "*", config.AllowOrigin)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, config.AllowMethods)
	assert.Equal(t, []string{"Content-Type"}, config.AllowHeaders)
}
