package handlers

import (
	"errors"
	"net/http"
	"time"

	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueToken handles POST /api/auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	if !h.authService.Enabled() {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	var req services.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, expiresAt, err := h.authService.IssueToken(&req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		AbortWithStatus(c, http.StatusUnauthorized)
		return
	}
	if err != nil {
		AbortWithStatus(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
