package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestKeyedLimiterBurstThenDeny(t *testing.T) {
	l := newKeyedLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("a", now))
	}
	assert.False(t, l.allow("a", now))
	assert.True(t, l.allow("b", now), "keys are limited independently")

	// 20 秒补充一个令牌
	assert.True(t, l.allow("a", now.Add(21*time.Second)))
}

func TestKeyedLimiterSweep(t *testing.T) {
	l := newKeyedLimiter(1, time.Second)
	now := time.Now()
	l.allow("stale", now)
	l.allow("fresh", now.Add(2*time.Minute))

	l.sweep(now.Add(2 * time.Minute))
	assert.NotContains(t, l.store, "stale")
	assert.Contains(t, l.store, "fresh")
}

func TestUserRateLimiterKeysByUser(t *testing.T) {
	r := gin.New()
	userID := uint(1)
	r.POST("/attempts", UserRateLimiter(1, time.Hour, func(*gin.Context) uint { return userID }), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attempts", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
	userID = 2
	assert.Equal(t, http.StatusOK, do())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://devcollab.example"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://devcollab.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://devcollab.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
