package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailWithFields_Envelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		FailWithFields(c, http.StatusForbidden, ErrRouteAccessDenied, map[string]string{"path": "/users"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "0b8f2a8e-7a35-4a1b-9d55-0a3c1f2b4e61")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "0b8f2a8e-7a35-4a1b-9d55-0a3c1f2b4e61", w.Header().Get("X-Request-ID"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrRouteAccessDenied, body.Error.Code)
	assert.Equal(t, GetMessage(ErrRouteAccessDenied), body.Error.Message)
	assert.Equal(t, "/users", body.Error.Fields["path"])
	assert.Equal(t, "0b8f2a8e-7a35-4a1b-9d55-0a3c1f2b4e61", body.Metadata.RequestID)
}

func TestRequestIDMiddleware_ReplacesNonUUID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "<script>")
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "<script>", w.Header().Get("X-Request-ID"))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestGetMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, "Đã xảy ra lỗi không mong muốn.", GetMessage("NOPE"))
}
