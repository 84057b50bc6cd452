package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// OTPMaxRequests caps OTP dispatches per email inside OTPCooldown.
	OTPMaxRequests = 3
	OTPCooldown    = 10 * time.Minute
)

// OTPRateLimit throttles OTP dispatch per email, backed by Redis. Only
// mounted when Redis is configured; without it the limit does not apply.
func OTPRateLimit(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Peek at the body without consuming it for the handler.
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "otp_requests:" + input.Email

		requests, _ := client.Get(ctx, key).Int()
		if requests >= OTPMaxRequests {
			ttl := client.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("too many OTP requests, retry in %d minutes", int(ttl.Minutes())+1),
				"status":      http.StatusTooManyRequests,
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		pipe := client.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, OTPCooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}
