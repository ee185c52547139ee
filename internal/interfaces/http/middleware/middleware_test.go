package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ghostwriter-api/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.seen == nil {
		l.seen = map[string]int{}
	}
	l.seen[key]++
	l.limit = limit
	return l.seen[key] <= limit, nil
}

func keyFn(clientID, endpoint string) string { return clientID + "|" + endpoint }

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/x/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{}
	r := newRouter(RateLimit(config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}, limiter, keyFn))

	assert.Equal(t, http.StatusOK, do(r, "/x/1", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "/x/2", nil).Code)
	w := do(r, "/x/3", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.Equal(t, 2, limiter.limit)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := newRouter(RateLimit(config.RateLimitConfig{Enabled: true}, &countingLimiter{err: errors.New("down")}, keyFn))
	assert.Equal(t, http.StatusOK, do(r, "/x/1", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	limiter := &countingLimiter{}
	r := newRouter(RateLimit(config.RateLimitConfig{Enabled: false}, limiter, keyFn))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, "/x/1", nil).Code)
	}
	assert.Empty(t, limiter.seen)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := do(r, "/x/1", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = do(r, "/x/1", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())

	w := do(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestCORS_Wildcard(t *testing.T) {
	r := newRouter(CORS(config.CORSConfig{}))

	w := do(r, "/x/1", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
