package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowCounter struct {
	start time.Time
	count int
}

// memoryLimiter is a per-instance fixed-window counter held in process
// memory. It backs SimpleRateLimit and the fallback path of the Redis
// limiters when Redis is not configured.
type memoryLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	counters map[string]*windowCounter
}

func newMemoryLimiter(maxRequests int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		max:      maxRequests,
		window:   window,
		counters: make(map[string]*windowCounter),
	}
}

// Allow counts a hit for key and reports whether it stays within the
// window budget. An expired window resets the counter.
func (l *memoryLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	wc, ok := l.counters[key]
	if !ok || now.Sub(wc.start) > l.window {
		l.counters[key] = &windowCounter{start: now, count: 1}
		return true
	}
	wc.count++
	return wc.count <= l.max
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// In-memory, per-IP; sufficient for a single instance without Redis.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	lim := newMemoryLimiter(maxRequests, window)
	return func(c *gin.Context) {
		if !lim.Allow(c.ClientIP()) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
