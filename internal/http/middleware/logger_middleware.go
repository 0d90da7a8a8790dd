package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
)

// LoggerMiddleware creates a middleware that logs HTTP requests in structured format
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithRequest(
			c.Request.Context(),
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start).String(),
			c.Writer.Size(),
		).Info("HTTP Request Processed")
	}
}
