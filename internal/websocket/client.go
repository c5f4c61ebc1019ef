package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vidyavichar/server/internal/models"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

// EventHandler processes one inbound event from an open channel. A
// returned error is reported to the originating channel only and never
// closes it.
type EventHandler interface {
	HandleEvent(client *Client, evt *Event) error
}

// Client is one realtime channel. The principal is bound at handshake
// time and never changes; identity fields inside event payloads are
// ignored.
type Client struct {
	ID        uuid.UUID
	Principal models.Principal
	Conn      *websocket.Conn
	Send      chan []byte
	Rooms     map[string]bool
	Hub       *Hub
	mu        sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, principal models.Principal) *Client {
	return &Client{
		ID:        uuid.New(),
		Principal: principal,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		Rooms:     make(map[string]bool),
		Hub:       hub,
	}
}

// ReadPump reads events from the channel and dispatches them.
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var evt Event
		err := c.Conn.ReadJSON(&evt)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("client_id", c.ID).Warn("websocket read error")
			}
			break
		}

		if evt.Type == EventPong {
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &evt); err != nil {
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump flushes the send queue to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent replies to this channel only.
func (c *Client) SendEvent(evtType EventType, payload interface{}) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(message string) {
	c.SendEvent(EventError, map[string]string{"message": message})
}

func (c *Client) IsInRoom(roomCode string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[roomCode]
}
