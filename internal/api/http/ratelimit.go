package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// tokenBucketScript refills and consumes one token atomically. State is a
// Redis hash per client key so concurrent requests race inside Redis, not in
// the application.
var tokenBucketScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_per_min = tonumber(ARGV[3])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    local elapsed = math.max(0, now_ms - last_refill)
    local refill = math.floor(elapsed * refill_per_min / 60000)
    if refill > 0 then
        tokens = math.min(capacity, tokens + refill)
        last_refill = now_ms
    end

    local allowed = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, 120)
    return allowed
`)

// IntakeRateLimiter throttles the public triage form per client IP. Redis
// being unreachable fails open: the form stays usable, the incident shows up
// in the log.
func IntakeRateLimiter(rdb *redis.Client, perMinute, burst int, logger *zap.Logger) fiber.Handler {
	if rdb == nil || perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst <= 0 {
		burst = perMinute
	}

	return func(c *fiber.Ctx) error {
		key := "ratelimit:intake:" + c.IP()
		allowed, err := tokenBucketScript.Run(c.UserContext(), rdb, []string{key},
			time.Now().UnixMilli(), burst, perMinute).Int()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if allowed != 1 {
			c.Set("Retry-After", strconv.Itoa(60/perMinute+1))
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests", fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
