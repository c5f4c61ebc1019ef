package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub keeps the registry of open channels and fans state changes out
// to them. Broadcasts are scoped to room groups; membership of a group
// is decided by the caller (the gateway re-derives it from the room
// directory when a channel subscribes).
type Hub struct {
	clients map[uuid.UUID]*Client

	// channels subscribed per room code
	rooms map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	log *logrus.Entry
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[string]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		log:        logrus.WithField("component", "hub"),
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	h.log.WithFields(logrus.Fields{
		"client_id": client.ID,
		"user":      client.Principal.Username,
		"role":      client.Principal.Role,
	}).Info("channel open")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for code := range client.Rooms {
		h.removeFromRoomUnsafe(client, code)
	}

	delete(h.clients, client.ID)
	close(client.Send)

	h.log.WithFields(logrus.Fields{
		"client_id": client.ID,
		"user":      client.Principal.Username,
	}).Info("channel closed")
}

// JoinRoom subscribes a channel to a room group. Authorization against
// the room directory happens before this is called.
func (h *Hub) JoinRoom(client *Client, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[uuid.UUID]*Client)
	}
	h.rooms[roomCode][client.ID] = client

	client.mu.Lock()
	client.Rooms[roomCode] = true
	client.mu.Unlock()
}

func (h *Hub) LeaveRoom(client *Client, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, roomCode)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, roomCode string) {
	room, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	if _, ok := room[client.ID]; !ok {
		return
	}

	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, roomCode)
	client.mu.Unlock()

	if len(room) == 0 {
		delete(h.rooms, roomCode)
	}
}

// BroadcastToRoom sends an event to every channel subscribed to the
// room. REST-originated and socket-originated mutations go through the
// same path so observers cannot tell them apart.
func (h *Hub) BroadcastToRoom(roomCode string, evtType EventType, payload interface{}) {
	data, err := marshalEvent(evtType, payload)
	if err != nil {
		h.log.WithError(err).Error("failed to encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomCode] {
		h.deliver(client, data)
	}
}

// BroadcastAll sends an event to every open channel, regardless of
// room subscriptions. Used for signals with no room scope.
func (h *Hub) BroadcastAll(evtType EventType, payload interface{}) {
	data, err := marshalEvent(evtType, payload)
	if err != nil {
		h.log.WithError(err).Error("failed to encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.deliver(client, data)
	}
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.log.WithField("client_id", client.ID).Warn("send queue full, dropping event")
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := marshalEvent(EventPing, nil)
	if err != nil {
		return
	}
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// RoomSubscribers returns how many channels currently observe a room.
func (h *Hub) RoomSubscribers(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func marshalEvent(evtType EventType, payload interface{}) ([]byte, error) {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(evt)
}
