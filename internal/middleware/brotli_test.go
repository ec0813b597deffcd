package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliEngine(body string) *gin.Engine {
	r := gin.New()
	r.Use(Brotli(), CacheControl(60))
	handler := func(c *gin.Context) { c.String(http.StatusOK, body) }
	r.GET("/api/v1/access/permissions", handler)
	r.GET("/ws/v1/session/stream", handler)
	r.GET("/api/v1/auth/me", NoStore(), handler)
	return r
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	body := strings.Repeat("manage_health_records ", 200)
	r := brotliEngine(body)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/access/permissions", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
}

func TestBrotli_LeavesSmallBodiesAlone(t *testing.T) {
	r := brotliEngine("ok")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/access/permissions", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotli_Skips(t *testing.T) {
	body := strings.Repeat("x", 4096)
	r := brotliEngine(body)

	req := httptest.NewRequest(http.MethodGet, "/ws/v1/session/stream", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, body, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/access/permissions", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestNoStore(t *testing.T) {
	r := brotliEngine("me")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
