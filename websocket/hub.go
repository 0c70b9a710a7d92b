package websocket

import (
	"TeamChat/interfaces"
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
)

// AllChats is the topic of clients that follow every chat.
const AllChats = ""

const broadcastBuffer = 256

// Hub maintains the set of active clients and fans change events out to them.
type Hub struct {
	// Registered clients by topic (chat id, or AllChats)
	clients map[string]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	broadcast chan interfaces.ChangeEvent

	// Closed once Run returns.
	done chan struct{}

	mu sync.Mutex
}

var _ interfaces.EventPublisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan interfaces.ChangeEvent, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues an event for delivery. Events are dropped when the queue is
// full so that writers never block on slow subscribers.
func (h *Hub) Publish(event interfaces.ChangeEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Warn("[WebSocket] broadcast queue full, dropping event", "type", event.Type, "chat_id", event.ChatID)
	}
}

// ClientCount returns the number of clients subscribed to topic.
func (h *Hub) ClientCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[topic])
}

// Run owns the client registry until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for topic, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, topic)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.Topic]; !ok {
				h.clients[client.Topic] = make(map[*Client]bool)
			}
			h.clients[client.Topic][client] = true
			h.mu.Unlock()
			log.Debug("[WebSocket] client registered", "user_id", client.UserID, "chat_id", client.Topic)

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Error("[WebSocket] failed to encode event", "type", event.Type, "err", err)
				continue
			}

			h.mu.Lock()
			h.deliver(event.ChatID, data)
			if event.ChatID != AllChats {
				h.deliver(AllChats, data)
			}
			h.mu.Unlock()
		}
	}
}

// deliver must be called with mu held.
func (h *Hub) deliver(topic string, data []byte) {
	for client := range h.clients[topic] {
		select {
		case client.send <- data:
		default:
			log.Warn("[WebSocket] client too slow, disconnecting", "user_id", client.UserID)
			h.remove(client)
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.Topic]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.Topic)
	}
}
