package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LimiterManager keeps one token bucket per client IP. Buckets idle
// longer than staleAfter are dropped by a background cleanup loop.
type LimiterManager struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
}

const staleAfter = 10 * time.Minute

// NewLimiterManager creates a manager allowing requestsPerMin per
// client with the given burst capacity.
func NewLimiterManager(requestsPerMin, burst int) *LimiterManager {
	m := &LimiterManager{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go m.cleanupLoop(staleAfter)
	return m
}

// Allow is non-blocking: it consumes a token for the key if one is
// available.
func (m *LimiterManager) Allow(key string) bool {
	m.mu.Lock()
	limiter, exists := m.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = limiter
	}
	m.lastSeen[key] = time.Now()
	m.mu.Unlock()

	return limiter.Allow()
}

func (m *LimiterManager) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			for key, seen := range m.lastSeen {
				if time.Since(seen) > staleAfter {
					delete(m.limiters, key)
					delete(m.lastSeen, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Stop ends the cleanup loop.
func (m *LimiterManager) Stop() {
	close(m.done)
}

// RateLimit rejects clients over their budget with 429.
func RateLimit(m *LimiterManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
