package http

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gin-gonic/gin"
)

// RequestLogger creates middleware that logs every callback request
func RequestLogger(logger watermill.LoggerAdapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("Handled callback request", watermill.LogFields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"origin":   c.GetHeader(HeaderOrigin),
			"duration": time.Since(start).String(),
		})
	}
}
