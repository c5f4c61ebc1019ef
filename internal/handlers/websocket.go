package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vidyavichar/server/internal/middleware"
	"github.com/vidyavichar/server/internal/models"
	ws "github.com/vidyavichar/server/internal/websocket"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	events   *QuestionEventHandler
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, events *QuestionEventHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades an authenticated request to a realtime
// channel. The principal resolved at handshake time is bound to the
// channel for its entire lifetime.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	principal, exists := c.Get(middleware.PrincipalKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, principal.(models.Principal))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.events)
}
