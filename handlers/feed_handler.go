package handlers

import (
	"log"
	"net/http"
	"strconv"

	"triviaapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // any origin, same as /api
	},
}

type FeedHandler struct {
	hub *services.Hub
}

func NewFeedHandler(hub *services.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Subscribe handles GET /ws/questions?category=N. Without a category the
// client receives changes for every category.
func (h *FeedHandler) Subscribe(c *gin.Context) {
	category := services.AllCategoriesID
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithMessage(c, http.StatusBadRequest, "category must be a non-negative integer")
			return
		}
		category = parsed
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		log.Printf("WebSocket upgrade failed for question feed: %v", err)
		return
	}

	if client := h.hub.RegisterClient(conn, category); client == nil {
		log.Printf("Question feed is shut down, rejected subscriber")
	}
}
