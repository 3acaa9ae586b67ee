package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/security"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// KeyFunc picks the bucket; defaults to the caller id, else client IP
	KeyFunc func(*gin.Context) string
}

// Atomic increment with TTL on first hit. Returns {count, ttl_seconds}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

type windowEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	// removed is set once sweep has dropped the entry from the map
	removed bool
}

// memoryWindow is the fixed-window fallback used when Redis is absent or failing.
type memoryWindow struct {
	entries sync.Map
}

func (w *memoryWindow) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	for {
		v, _ := w.entries.LoadOrStore(key, &windowEntry{resetAt: now.Add(window)})
		entry := v.(*windowEntry)

		entry.mu.Lock()
		if entry.removed {
			// swept between load and lock; count on the live entry instead
			entry.mu.Unlock()
			continue
		}
		if now.After(entry.resetAt) {
			entry.count = 0
			entry.resetAt = now.Add(window)
		}
		entry.count++
		count, resetAt := entry.count, entry.resetAt
		entry.mu.Unlock()
		return count, resetAt
	}
}

func (w *memoryWindow) sweep(now time.Time) {
	w.entries.Range(func(key, value interface{}) bool {
		entry := value.(*windowEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) && w.entries.CompareAndDelete(key, entry) {
			entry.removed = true
		}
		entry.mu.Unlock()
		return true
	})
}

// DefaultRateLimitConfig keys authenticated callers by user id
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:api:",
		KeyFunc: func(c *gin.Context) string {
			if identity, ok := IdentityFrom(c); ok {
				return "user:" + identity.UserID
			}
			return "ip:" + c.ClientIP()
		},
	}
}

// RateLimitMiddleware uses Redis when a client is given and falls back to
// an in-process window when it is nil or returns an error.
func RateLimitMiddleware(config RateLimitConfig, client *goredis.Client, secLog *security.SecurityLogger) gin.HandlerFunc {
	fallback := &memoryWindow{}
	var lastSweep time.Time
	var sweepMu sync.Mutex

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time
		var err error
		if client != nil {
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, key, config)
			if err != nil {
				logger.Log.Warn("redis rate limit unavailable, using memory window", "error", err)
			}
		}
		if client == nil || err != nil {
			count, resetAt = fallback.hit(key, config.Window, now)

			sweepMu.Lock()
			if now.Sub(lastSweep) > 5*time.Minute {
				lastSweep = now
				go fallback.sweep(now)
			}
			sweepMu.Unlock()
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			identity, _ := IdentityFrom(c)
			secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventRateLimitTriggered,
				UserID:    identity.UserID,
				Role:      string(identity.Role),
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString("RequestID"),
				Path:      c.FullPath(),
				Details:   map[string]interface{}{"limit": config.Limit, "count": count},
			})
			response.AppError(c, apperror.TooManyRequests("Rate limit exceeded. Please try again later."), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
