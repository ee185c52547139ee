package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/config"
	"ghostwriter-api/internal/interfaces/http/dto"
	"ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

// RateLimiter 滑动窗口限流器
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// KeyFunc 由客户端标识与路由模板生成限流 key
type KeyFunc func(clientID, endpoint string) string

// RateLimit 按客户端 IP 与路由限流，限流器不可用时放行
func RateLimit(cfg config.RateLimitConfig, limiter RateLimiter, keyFn KeyFunc) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.Requests <= 0 {
		cfg.Requests = 20
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, keyFn(c.ClientIP(), endpoint), cfg.Requests, cfg.Window)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
				Error:   &dto.ErrorDetail{ErrorCode: string(errors.CodeTooManyRequests)},
				TraceID: c.GetString("trace_id"),
			})
			return
		}
		c.Next()
	}
}
