package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs request failures and recovers from panics. Stack traces
// go to the response body only when showStack is set (non-production).
func ErrorLogger(showStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(c, start, "panic", err.Error())

				body := gin.H{
					"code":    "INTERNAL_SERVER_ERROR",
					"message": "Internal server error",
				}
				if showStack {
					body["details"] = err.Error()
					body["stack"] = string(debug.Stack())
				}
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   body,
				})
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(c, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()))
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", err.Type), err.Error())
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType, message string) {
	slog.Error("request failed",
		"type", errType,
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"user_id", c.GetInt64("user_id"),
		"latency", time.Since(start).String(),
		"error", message,
	)
}
