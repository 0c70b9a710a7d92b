package websocket

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames and small keepalives.
	maxMessageSize = 1024

	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one change-feed connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	UserID string
	Topic  string
	send   chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, topic string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		UserID: userID,
		Topic:  topic,
		send:   make(chan []byte, sendBuffer),
	}
}

// ReadPump drains incoming frames so that pongs and close frames are handled.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		log.Debug("[WebSocket] connection closed", "user_id", c.UserID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("[WebSocket] read error", "user_id", c.UserID, "err", err)
			}
			return
		}
	}
}

// WritePump forwards queued events to the connection and keeps it alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn("[WebSocket] write error", "user_id", c.UserID, "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades the request and subscribes the connection to topic.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID, topic string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("[WebSocket] upgrade failed", "user_id", userID, "err", err)
		return
	}

	client := NewClient(hub, conn, userID, topic)
	hub.Register(client)
	log.Info("[WebSocket] connected", "user_id", userID, "chat_id", topic)

	go client.WritePump()
	go client.ReadPump()
}
