package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/config"
)

// CORS 跨域中间件，未配置的字段使用宽松默认值
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	}

	allowAll := len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*"
	return cors.New(cors.Config{
		AllowAllOrigins: allowAll,
		AllowOrigins:    originsUnlessWildcard(cfg.AllowedOrigins, allowAll),
		AllowMethods:    cfg.AllowedMethods,
		AllowHeaders:    cfg.AllowedHeaders,
		ExposeHeaders:   []string{RequestIDHeader, "X-Trace-ID", "Content-Length"},
		MaxAge:          12 * time.Hour,
	})
}

func originsUnlessWildcard(origins []string, allowAll bool) []string {
	if allowAll {
		return nil
	}
	return origins
}
