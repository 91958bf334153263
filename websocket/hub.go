package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/google/uuid"
)

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	ID      uuid.UUID
	AdminID string
	Conn    Conn
}

type FeedEvent struct {
	Type         string               `json:"type"`
	Transactions []models.Transaction `json:"transactions"`
	At           time.Time            `json:"at"`
}

const (
	EventTransactionsPending = "transactions.pending"
	EventTransactionDecided  = "transaction.decided"
)

// Hub fans admin feed events out to every connected dashboard.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan FeedEvent

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	done    chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan FeedEvent, 64),
		clients:    make(map[uuid.UUID]*Client),
		done:       make(chan struct{}),
	}
}

var Feed = NewHub()

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Admin feed client registered: %s (%s)", client.ID, client.AdminID)
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.mu.Lock()
			if existing, ok := h.clients[client.ID]; ok && existing.Conn == client.Conn {
				delete(h.clients, client.ID)
				log.Printf("Admin feed client unregistered: %s", client.ID)
			}
			h.mu.Unlock()
		case event := <-h.Broadcast:
			h.deliver(event)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) deliver(event FeedEvent) {
	var dead []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		if err := client.Conn.WriteJSON(event); err != nil {
			log.Printf("Error sending feed event to client %s: %v", client.ID, err)
			dead = append(dead, client)
		}
	}
	h.mu.RUnlock()

	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	for _, client := range dead {
		client.Conn.Close()
		delete(h.clients, client.ID)
	}
	h.mu.Unlock()
}

// Publish never blocks the caller; events are dropped when the buffer is full.
func (h *Hub) Publish(eventType string, txns []models.Transaction) {
	event := FeedEvent{Type: eventType, Transactions: txns, At: time.Now()}
	select {
	case h.Broadcast <- event:
	default:
		log.Printf("⚠️ Admin feed buffer full, dropping %s event", eventType)
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
