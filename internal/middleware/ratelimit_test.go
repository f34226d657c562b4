package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func hitFrom(router *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", nil)
	req.RemoteAddr = ip + ":4321"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_WithinBudget(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(10, 10))

	if code := hitFrom(router, "192.168.1.1"); code != http.StatusOK {
		t.Errorf("first request = %d, expected 200", code)
	}
}

func TestRateLimiter_BurstExhausted(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(1, 2))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		codes = append(codes, hitFrom(router, "10.0.0.1"))
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests = %v, expected the first two to pass", codes)
	}
	if codes[len(codes)-1] != http.StatusTooManyRequests {
		t.Errorf("final request = %d, expected 429", codes[len(codes)-1])
	}
}

func TestRateLimiter_PerIPBuckets(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(1, 1))

	// Exhaust the first IP's bucket.
	hitFrom(router, "10.0.0.1")
	if code := hitFrom(router, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("exhausted IP = %d, expected 429", code)
	}

	// A different IP still has a fresh bucket.
	if code := hitFrom(router, "10.0.0.2"); code != http.StatusOK {
		t.Errorf("fresh IP = %d, expected 200", code)
	}
}
