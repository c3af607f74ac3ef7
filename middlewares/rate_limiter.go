package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/utils"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idle    time.Duration
	message string
	ips     map[string]*visitor
	mu      sync.Mutex
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		burst:   burst,
		idle:    10 * time.Minute,
		message: "too many requests",
		ips:     make(map[string]*visitor),
	}
}

// NewLoginRateLimiter allows five sign-in attempts per minute per IP.
func NewLoginRateLimiter() *RateLimiter {
	rl := NewRateLimiter(rate.Every(12*time.Second), 5)
	rl.message = "Too many sign-in attempts, please wait a moment"
	return rl
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.ips {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.ips, key)
		}
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.AbortError(c, http.StatusTooManyRequests, &CustomError{rl.message})
			return
		}
		c.Next()
	}
}
