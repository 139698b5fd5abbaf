package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request with method, path, status and
// duration. Handler errors recorded on the gin context are folded into
// the same entry.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		attrs := []any{
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"client_ip", c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
			logger.Error("request", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}

// Recovery converts handler panics into 500 responses and logs them.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"err", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}
