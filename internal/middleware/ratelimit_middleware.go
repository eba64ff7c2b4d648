package middleware

import (
	"net/http"
	"strconv"

	"goboard/internal/redis"
	"goboard/internal/services"
	"goboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles the abuse-prone commands: auth attempts
// per client IP, upload submissions per authenticated user. Everything
// else passes untouched. Must run after AuthMiddleware so the user id is
// already in context.
func RateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		command := c.Query("command")
		if command == "" {
			command = c.PostForm("command")
		}

		switch command {
		case "login", "signup":
			result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
			if err != nil {
				c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error", "INTERNAL_ERROR"))
				c.Abort()
				return
			}
			setRateLimitHeaders(c, result)
			if !result.Allowed {
				c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
				c.Abort()
				return
			}
		case "fileUpload", "boardInsert", "boardUpdate":
			userID, ok := services.UserIDFromContext(c.Request.Context())
			if !ok {
				// Anonymous requests fail the auth check downstream.
				c.Next()
				return
			}
			result, err := limiter.AllowUpload(c.Request.Context(), userID.String())
			if err != nil {
				c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error", "INTERNAL_ERROR"))
				c.Abort()
				return
			}
			setRateLimitHeaders(c, result)
			if !result.Allowed {
				c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("upload rate limit exceeded", "RATE_LIMITED"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
