package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyavichar/server/internal/database"
	"github.com/vidyavichar/server/internal/handlers/dto"
	"github.com/vidyavichar/server/internal/middleware"
	"github.com/vidyavichar/server/internal/models"
	"github.com/vidyavichar/server/internal/websocket"
)

// QuestionHandler is the REST facade over the question store. Every
// mutation fires the same broadcast the realtime gateway uses, so
// socket observers see REST-originated changes identically.
type QuestionHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewQuestionHandler(db *database.Database, hub *websocket.Hub) *QuestionHandler {
	return &QuestionHandler{db: db, hub: hub}
}

func (h *QuestionHandler) Create(c *gin.Context) {
	principal := c.MustGet(middleware.PrincipalKey).(models.Principal)

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	author := req.Author
	if author == "" {
		author = principal.Username
	}

	question, err := h.db.CreateQuestion(req.RoomID, req.Text, author)
	switch err {
	case nil:
	case database.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Question text required"})
		return
	case database.ErrDuplicate:
		c.JSON(http.StatusConflict, gin.H{"message": "Duplicate question"})
		return
	case database.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.hub.BroadcastToRoom(question.RoomCode, websocket.EventQuestionPosted, question)

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) List(c *gin.Context) {
	filter := database.QuestionFilter{
		RoomCode: c.Query("roomId"),
		Status:   c.Query("status"),
	}

	questions, err := h.db.ListQuestions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	var patch dto.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	question, err := h.db.UpdateQuestion(c.Param("id"), patch.Updates())
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.hub.BroadcastToRoom(question.RoomCode, websocket.EventUpdateQuestion, question)

	c.JSON(http.StatusOK, question)
}

// Answer stores the answer text and forces the question into the
// answered status.
func (h *QuestionHandler) Answer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"answer": req.Answer,
		"status": models.StatusAnswered,
	}

	question, err := h.db.UpdateQuestion(c.Param("id"), updates)
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.hub.BroadcastToRoom(question.RoomCode, websocket.EventUpdateQuestion, question)

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	question, err := h.db.GetQuestion(id)
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	removed, err := h.db.RemoveQuestion(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	h.hub.BroadcastToRoom(question.RoomCode, websocket.EventDeleteQuestion, gin.H{"id": id})

	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "id": id})
}

// Clear bulk-deletes questions, optionally room-scoped and optionally
// only those already resolved.
func (h *QuestionHandler) Clear(c *gin.Context) {
	roomID := c.Query("roomId")
	onlyAnswered := c.Query("onlyAnswered") == "true"

	if _, err := h.db.ClearQuestions(roomID, onlyAnswered); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if roomID != "" {
		h.hub.BroadcastToRoom(roomID, websocket.EventClearQuestions, gin.H{"roomId": roomID})
	} else {
		h.hub.BroadcastAll(websocket.EventClearQuestions, nil)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cleared"})
}
