package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is gin's access log with the request id appended.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		requestID, _ := p.Keys[RequestIDKey].(string)
		return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | id=%s %s\n",
			p.TimeStamp.Format(time.RFC3339),
			p.StatusCode,
			p.Latency,
			p.ClientIP,
			p.Method,
			p.Path,
			requestID,
			p.ErrorMessage,
		)
	})
}
