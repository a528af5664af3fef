package middleware

import (
	"log"
	"net/http"
	"strings"

	"triviaapi/handlers"
	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires an admin bearer token when auth is configured and
// lets every request through otherwise.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			handlers.AbortWithMessage(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if err := authService.ValidateToken(token); err != nil {
			log.Printf("Rejected token for %s %s: %v", c.Request.Method, c.FullPath(), err)
			handlers.AbortWithStatus(c, http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
