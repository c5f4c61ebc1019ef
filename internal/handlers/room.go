package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidyavichar/server/internal/database"
	"github.com/vidyavichar/server/internal/handlers/dto"
)

type RoomHandler struct {
	db *database.Database
}

func NewRoomHandler(db *database.Database) *RoomHandler {
	return &RoomHandler{db: db}
}

// CreateRoom opens a new question board with a generated share code.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.RoomName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomName is required"})
		return
	}
	if req.CreatorName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "creatorName is required"})
		return
	}
	creatorID, err := uuid.Parse(req.CreatorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "creatorId is required"})
		return
	}

	room, err := h.db.CreateRoom(req.RoomName, req.CreatorName, creatorID)
	if err == database.ErrValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid room request"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"roomId":    room.Code,
		"roomName":  room.Name,
		"createdBy": room.CreatedBy,
		"message":   "Room created successfully",
	})
}

// JoinRoom admits the caller to an existing room. Rejoining with the
// same identity is idempotent.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomId is required"})
		return
	}

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}
	if req.ParticipantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "participantId is required"})
		return
	}

	room, err := h.db.JoinRoom(roomID, req.Name, req.ParticipantID)
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		return
	}
	if err == database.ErrValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid join request"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to join room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Successfully joined room",
		"roomId":   room.Code,
		"roomName": room.Name,
	})
}

func (h *RoomHandler) ShowRoom(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomId is required"})
		return
	}

	room, err := h.db.GetRoom(roomID)
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomId":       room.Code,
		"roomName":     room.Name,
		"participants": room.Participants,
		"createdAt":    room.CreatedAt,
		"isActive":     room.IsActive,
	})
}
