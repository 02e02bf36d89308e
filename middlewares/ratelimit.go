package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// NewRateLimiterMiddleware creates a global rate limiter middleware.
// A non-positive rate disables limiting.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	limit := rate.Limit(config.RequestsPerSecond)
	if config.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	limiter := rate.NewLimiter(limit, config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.String(http.StatusTooManyRequests, "Too many requests, please slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
