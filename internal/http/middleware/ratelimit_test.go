package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryLimiterBudget(t *testing.T) {
	lim := newMemoryLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !lim.Allow("1.2.3.4") {
			t.Fatalf("request %d blocked within budget", i+1)
		}
	}
	if lim.Allow("1.2.3.4") {
		t.Error("request over budget allowed")
	}
	if !lim.Allow("5.6.7.8") {
		t.Error("unrelated key blocked")
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	lim := newMemoryLimiter(1, 10*time.Millisecond)

	if !lim.Allow("k") {
		t.Fatal("first request blocked")
	}
	if lim.Allow("k") {
		t.Fatal("second request in window allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if !lim.Allow("k") {
		t.Error("request after window expiry blocked")
	}
}

func TestSimpleRateLimitBlocksOverBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", SimpleRateLimit(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ws", nil)
		req.RemoteAddr = "3.3.3.3:999"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Errorf("first request = %d, want 200", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", code)
	}
}

func TestRedisRateLimitFallsBackWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RedisRateLimit(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("requests within budget got %v", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("request over budget got %d, want 429", statuses[2])
	}
}

func TestAddressRateLimitFallsBackWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/claim",
		func(c *gin.Context) { c.Set("address", c.GetHeader("X-Test-Address")) },
		AddressRateLimit(1, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	do := func(address string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/claim", nil)
		req.Header.Set("X-Test-Address", address)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("0xaaa"); code != http.StatusOK {
		t.Errorf("first request = %d, want 200", code)
	}
	if code := do("0xaaa"); code != http.StatusTooManyRequests {
		t.Errorf("second request same address = %d, want 429", code)
	}
	// a different address has its own budget
	if code := do("0xbbb"); code != http.StatusOK {
		t.Errorf("other address = %d, want 200", code)
	}
}

func TestAddressRateLimitRejectsMissingAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", AddressRateLimit(5, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing address = %d, want 401", w.Code)
	}
}
