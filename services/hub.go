package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"triviaapi/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"

	writeWait = 10 * time.Second
)

// Hub fans question change events out to websocket subscribers. Each client
// watches either every category (0) or a single one.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan categoryMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

type Client struct {
	hub      *Hub
	id       string
	socket   *websocket.Conn
	send     chan []byte
	category int
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type categoryMessage struct {
	category int
	data     []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan categoryMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Feed client registered: %s (category %d) - Total clients: %d", client.id, client.category, total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Feed client unregistered: %s - Total clients: %d", client.id, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if client.category != AllCategoriesID && client.category != message.category {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					log.Printf("Feed client %s send buffer full, closing connection", client.id)
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastQuestionEvent queues an event for subscribers of the question's
// category. Events are dropped when the queue is full.
func (h *Hub) BroadcastQuestionEvent(eventType string, question models.QuestionView) {
	data, err := json.Marshal(Message{Type: eventType, Payload: question})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- categoryMessage{category: question.Category, data: data}:
	default:
		log.Printf("Feed queue full, dropping %s for question %d", eventType, question.ID)
	}
}

// ClientCount reports how many subscribers are connected.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) RegisterClient(conn *websocket.Conn, category int) *Client {
	client := &Client{
		hub:      h,
		id:       uuid.NewString(),
		socket:   conn,
		send:     make(chan []byte, 256),
		category: category,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// enqueue delivers data to this client if the hub still holds it.
func (c *Client) enqueue(data []byte) {
	c.hub.mutex.RLock()
	defer c.hub.mutex.RUnlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		c.socket.SetWriteDeadline(time.Now().Add(writeWait))

		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}

	c.socket.SetWriteDeadline(time.Now().Add(writeWait))
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.enqueue(data)

	default:
		log.Printf("Unknown message type: %s from feed client %s", msg.Type, c.id)
	}
}
