package middleware

import (
	"fmt"
	"time"

	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter accepts a nil client, in which case Limit lets every request through.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows at most limit requests per client IP within window, counted in redis
// under rate_limit:<keySuffix>:<ip>.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.redisClient == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.IP())

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}

		if count == 1 {
			rl.redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(ctx, key).Result()
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%.0f", ttl.Seconds()))
			return utils.Error(c, fiber.StatusTooManyRequests, fiber.NewError(fiber.StatusTooManyRequests, "Too many requests"))
		}
		return c.Next()
	}
}
