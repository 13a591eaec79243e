package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggingMiddleware_InjectsLoggerIntoBothContexts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	var fromGin, fromCtx *slog.Logger
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		fromGin = GetLoggerFromContext(c)
		fromCtx = GetLoggerFromCtx(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	require.NotNil(t, fromGin)
	assert.Same(t, fromGin, fromCtx, "gin and request context must carry the same request-scoped logger")
	assert.NotSame(t, slog.Default(), fromGin)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))
}

func TestGetLoggerFromContext_FallsBackWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Same(t, slog.Default(), GetLoggerFromContext(c))
}
