package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/metrics"
)

const rateLimitWindow = 24 * time.Hour

// IssueRateLimiter allows each user limit report submissions per 24 hours.
// It must run after AuthMiddleware. A nil client or a non-positive limit
// disables it.
func IssueRateLimiter(rdb *redis.Client, keyPrefix string, limit int) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if keyPrefix == "" {
		keyPrefix = "issue_limit"
	}

	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if userID == "" {
			AbortWithError(c, errs.Unauthorized("User not authenticated"))
			return
		}

		ctx := c.Request.Context()
		userKey := keyPrefix + ":" + userID

		count, err := rdb.Incr(ctx, userKey).Result()
		if err != nil {
			// Redis trouble should not block reporting.
			logger.FromContext(ctx).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := rdb.Expire(ctx, userKey, rateLimitWindow).Err(); err != nil {
				logger.FromContext(ctx).Warn().Err(err).Str("key", userKey).Msg("rate limiter failed to set TTL")
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, userKey).Result()
			if retryAfter < 0 {
				retryAfter = rateLimitWindow
			}
			metrics.ReportsRateLimited.Inc()
			c.Header("Retry-After", formatSeconds(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d.Round(time.Second)/time.Second), 10)
}
