package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// PerUserRateLimiter throttles an endpoint per authenticated user. Used on
// call-waiter so a table cannot spam its waiter (1 call per 30s).
type PerUserRateLimiter struct {
	limiters map[uint]*rate.Limiter
	mu       sync.Mutex
	every    time.Duration
	burst    int
}

func NewPerUserRateLimiter(every time.Duration, burst int) *PerUserRateLimiter {
	return &PerUserRateLimiter{
		limiters: make(map[uint]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

func (rl *PerUserRateLimiter) limiterFor(userID uint) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.limiters[userID] = limiter
	}
	return limiter
}

func (rl *PerUserRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		if !rl.limiterFor(userID).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please wait before trying again",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewStrictRateLimiter throttles login/register attempts per client IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiters := make(map[string]*rate.Limiter)
	var mu sync.Mutex

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(time.Minute/10), 10)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
