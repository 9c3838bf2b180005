// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"sik-configurator/internal/utils"
)

// LoggingMiddleware logs every request once it has been served
func LoggingMiddleware(logger *utils.ServiceLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		url := c.Request.URL

		c.Next()

		target := url.Path
		if url.RawQuery != "" {
			target += "?" + url.RawQuery
		}
		logger.LogAPIRequest(c.Request.Method, target, c.Request.UserAgent(), c.ClientIP(),
			c.Writer.Status(), time.Since(started))
	}
}
