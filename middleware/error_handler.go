package middleware

import (
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs and reports the errors handlers attached with c.Error.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Error(ginErr.Err))
			monitoring.CaptureError(ginErr.Err, map[string]interface{}{
				"endpoint": c.Request.URL.Path,
				"method":   c.Request.Method,
				"status":   c.Writer.Status(),
			})
		}
	}
}
