package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/utils/cache"
	"github.com/skillport/trainer-api/utils/response"
)

const (
	writeThrottleWindow = time.Minute
	writeThrottleMax    = 120
)

// WriteThrottle caps the number of mutating requests a single trainer can
// issue per window, backed by Redis. Fail-open: when Redis is unreachable
// the request proceeds.
type WriteThrottle struct {
	redisCache *cache.RedisCache
}

// NewWriteThrottle creates a new write throttle instance
func NewWriteThrottle(redisCache *cache.RedisCache) *WriteThrottle {
	return &WriteThrottle{
		redisCache: redisCache,
	}
}

// Limit is middleware applied to the trainer route group. Reads pass
// through untouched.
func (t *WriteThrottle) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		trainerID, ok := PrincipalID(c)
		if !ok {
			return c.Next()
		}

		key := fmt.Sprintf("write_throttle:%d", trainerID)
		count, err := t.redisCache.Increment(c.Context(), key)
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			_ = t.redisCache.Expire(c.Context(), key, writeThrottleWindow)
		}

		if count > writeThrottleMax {
			ttl, _ := t.redisCache.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(writeThrottleWindow.Seconds())
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, "Too many changes, slow down")
		}

		return c.Next()
	}
}
