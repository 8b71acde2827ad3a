// Package httpmw carries the request-logging and recovery middleware the
// gin-based oracle-server binary installs. Nothing in the core executor
// depends on this package; it exists only for the demo HTTP surface.
package httpmw

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/obslog"
)

// RequestID stamps every request with an X-Request-ID header, generating
// one if the caller didn't supply it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = time.Now().Format("20060102150405.000000")
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// ZapLogger logs each request through obslog's process-wide logger once the
// handler chain completes, at a level keyed off the response status.
func ZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		duration := time.Since(start)

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("duration", duration),
		}
		if id, ok := c.Get("request_id"); ok {
			fields = append(fields, zap.String("request_id", id.(string)))
		}

		status := c.Writer.Status()
		logger := obslog.Get()
		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// ZapRecovery replaces gin's default panic recovery with one that logs the
// panic through obslog before responding 500.
func ZapRecovery() gin.HandlerFunc {
	return gin.RecoveryWithWriter(gin.DefaultWriter, func(c *gin.Context, recovered any) {
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		}
		if id, ok := c.Get("request_id"); ok {
			fields = append(fields, zap.String("request_id", id.(string)))
		}
		obslog.Get().Error("panic recovered", fields...)
		c.AbortWithStatus(500)
	})
}
