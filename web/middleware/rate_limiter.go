package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"fal-engine/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	RequestsPerMinute int           // Sustained requests per client per minute
	BurstSize         int           // Allow burst of N requests
	IdleTTL           time.Duration // Forget clients idle for this long
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client address.
type ClientRateLimiter struct {
	config  RateLimiterConfig
	clients map[string]*clientLimiter
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewClientRateLimiter creates a new per-client rate limiter
func NewClientRateLimiter(config RateLimiterConfig, logger *zap.Logger) *ClientRateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &ClientRateLimiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
		logger:  logger,
	}
}

// Allow checks if a request from client can proceed and consumes a token if so
func (l *ClientRateLimiter) Allow(client string, now time.Time) bool {
	l.mu.Lock()
	cl, exists := l.clients[client]
	if !exists {
		perSecond := rate.Limit(float64(l.config.RequestsPerMinute) / 60.0)
		cl = &clientLimiter{limiter: rate.NewLimiter(perSecond, l.config.BurstSize)}
		l.clients[client] = cl
	}
	cl.lastSeen = now
	l.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// Cleanup removes limiters for clients idle longer than IdleTTL and returns
// how many were removed.
func (l *ClientRateLimiter) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for client, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.config.IdleTTL {
			delete(l.clients, client)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware creates a Gin middleware that limits requests per client IP
func RateLimitMiddleware(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.config.BurstSize))

		if !limiter.Allow(client, time.Now()) {
			limiter.logger.Warn("Rate limit exceeded",
				zap.String("client", client),
				zap.Int("limit", limiter.config.RequestsPerMinute))

			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{Error: "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
