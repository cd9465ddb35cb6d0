package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/cache"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxLocalLimiters = 10000

// RateLimiter counts requests per client IP in redis. Without redis it falls
// back to an in-process token bucket with the same average rate.
type RateLimiter struct {
	name        string
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(name string, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		name:        name,
		maxRequests: maxRequests,
		window:      window,
		limiters:    make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) local(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) > maxLocalLimiters {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := rl.limiters[key]
	if !ok {
		every := rl.window / time.Duration(rl.maxRequests)
		limiter = rate.NewLimiter(rate.Every(every), rl.maxRequests)
		rl.limiters[key] = limiter
	}
	return limiter
}

// allow reports whether the request may proceed and how many remain.
func (rl *RateLimiter) allow(c *gin.Context, key string) (bool, int) {
	if cache.Enabled() {
		count, err := cache.IncrementCounter(c.Request.Context(), "rate_limit:"+rl.name+":"+key, rl.window)
		if err == nil {
			return count <= int64(rl.maxRequests), max(0, rl.maxRequests-int(count))
		}
		utils.Logger.Error("rate_limit_error", zap.Error(err))
	}
	limiter := rl.local(key)
	ok := limiter.Allow()
	return ok, max(0, int(limiter.Tokens()))
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		ok, remaining := rl.allow(c, clientIP)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			utils.Logger.Warn("rate_limit_exceeded",
				zap.String("limiter", rl.name),
				zap.String("ip", clientIP),
			)
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, try again later",
			})
			return
		}
		c.Next()
	}
}
