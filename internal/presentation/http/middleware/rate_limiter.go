package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
)

// UserRateLimiter provides per-user rate limiting so one buyer hammering the
// checkout cannot starve everyone else. Unauthenticated requests fall back to
// per-IP limiting.
type UserRateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns sensible defaults
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// NewUserRateLimiter creates a new per-user rate limiter
func NewUserRateLimiter(cfg RateLimiterConfig) *UserRateLimiter {
	rl := &UserRateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *UserRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, exists := rl.limiters[key]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

func (rl *UserRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *UserRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware returns a Gin middleware that applies the rate limit
func (rl *UserRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userIDValue, exists := c.Get("user_id"); exists {
			if userID, ok := userIDValue.(uuid.UUID); ok {
				key = "user:" + userID.String()
			}
		}

		limiter := rl.getLimiter(key)

		if !limiter.Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.ErrorWithCode(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}
