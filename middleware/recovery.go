package middleware

import (
	"log"
	"net/http"

	"triviaapi/handlers"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into the 500 error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic on %s %s (request %s): %v",
			c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey), recovered)
		handlers.AbortWithStatus(c, http.StatusInternalServerError)
	})
}
