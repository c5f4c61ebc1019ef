package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/vidyavichar/server/internal/database"
	"github.com/vidyavichar/server/internal/handlers/dto"
	"github.com/vidyavichar/server/internal/models"
	"github.com/vidyavichar/server/internal/websocket"
)

// QuestionEventHandler dispatches question-lifecycle events arriving
// on realtime channels. Every mutating event is authorized against the
// channel's bound principal and, where room-scoped, against the room
// directory. Failures are reported to the originating channel only;
// the channel stays open.
type QuestionEventHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewQuestionEventHandler(db *database.Database, hub *websocket.Hub) *QuestionEventHandler {
	return &QuestionEventHandler{db: db, hub: hub}
}

func (h *QuestionEventHandler) HandleEvent(client *websocket.Client, evt *websocket.Event) error {
	switch evt.Type {
	case websocket.EventJoinRoom:
		return h.handleJoinRoom(client, evt)

	case websocket.EventPostQuestion:
		return h.handlePostQuestion(client, evt)

	case websocket.EventManageQuestion:
		return h.handleManageQuestion(client, evt)

	case websocket.EventGetQuestions:
		return h.handleGetQuestions(client, evt)

	case websocket.EventClearQuestions:
		return h.handleClearQuestions(client, evt)

	default:
		logrus.WithField("type", evt.Type).Warn("unknown event type")
		return nil
	}
}

// handleJoinRoom subscribes the channel to a room group. Membership is
// checked against the room directory, not against anything the client
// claims.
func (h *QuestionEventHandler) handleJoinRoom(client *websocket.Client, evt *websocket.Event) error {
	var payload dto.JoinRoomPayload
	if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.RoomID == "" {
		return websocket.ErrInvalidEvent
	}

	ok, err := h.db.IsParticipant(payload.RoomID, client.Principal.ID.String())
	if err == database.ErrNotFound {
		return websocket.ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	if !ok {
		return websocket.ErrNotInRoom
	}

	h.hub.JoinRoom(client, payload.RoomID)

	return client.SendEvent(websocket.EventJoinedRoom, map[string]string{"roomId": payload.RoomID})
}

func (h *QuestionEventHandler) handlePostQuestion(client *websocket.Client, evt *websocket.Event) error {
	if client.Principal.Role != models.RoleStudent {
		return websocket.ErrForbidden
	}

	var payload dto.PostQuestionPayload
	if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.RoomID == "" {
		return websocket.ErrInvalidEvent
	}

	ok, err := h.db.IsParticipant(payload.RoomID, client.Principal.ID.String())
	if err == database.ErrNotFound {
		return websocket.ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	if !ok {
		return websocket.ErrNotInRoom
	}

	question, err := h.db.CreateQuestion(payload.RoomID, payload.Question, client.Principal.Username)
	if err != nil {
		return err
	}

	h.hub.BroadcastToRoom(question.RoomCode, websocket.EventQuestionPosted, question)

	return nil
}

func (h *QuestionEventHandler) handleManageQuestion(client *websocket.Client, evt *websocket.Event) error {
	role := client.Principal.Role
	if role != models.RoleFaculty && role != models.RoleTA {
		return websocket.ErrForbidden
	}

	var payload dto.ManageQuestionPayload
	if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.QuestionID == "" {
		return websocket.ErrInvalidEvent
	}

	question, err := h.db.GetQuestion(payload.QuestionID)
	if err == database.ErrNotFound {
		return websocket.ErrQuestionNotFound
	}
	if err != nil {
		return err
	}
	if payload.RoomID != "" && question.RoomCode != payload.RoomID {
		return websocket.ErrInvalidEvent
	}

	updated, err := h.db.UpdateQuestion(payload.QuestionID, payload.Patch().Updates())
	if err == database.ErrNotFound {
		return websocket.ErrQuestionNotFound
	}
	if err != nil {
		return err
	}

	h.hub.BroadcastToRoom(updated.RoomCode, websocket.EventUpdateQuestion, updated)

	return nil
}

func (h *QuestionEventHandler) handleGetQuestions(client *websocket.Client, evt *websocket.Event) error {
	var payload dto.GetQuestionsPayload
	if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.RoomID == "" {
		return websocket.ErrInvalidEvent
	}

	questions, err := h.db.ListQuestions(database.QuestionFilter{
		RoomCode: payload.RoomID,
		Status:   payload.Status,
	})
	if err != nil {
		return err
	}

	return client.SendEvent(websocket.EventQuestions, questions)
}

func (h *QuestionEventHandler) handleClearQuestions(client *websocket.Client, evt *websocket.Event) error {
	if client.Principal.Role != models.RoleFaculty {
		return websocket.ErrForbidden
	}

	var payload dto.ClearQuestionsPayload
	if len(evt.Data) > 0 {
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return websocket.ErrInvalidEvent
		}
	}

	count, err := h.db.ClearQuestions(payload.RoomID, payload.OnlyAnswered)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"room":    payload.RoomID,
		"removed": count,
		"user":    client.Principal.Username,
	}).Info("questions cleared")

	if payload.RoomID != "" {
		h.hub.BroadcastToRoom(payload.RoomID, websocket.EventClearQuestions, map[string]string{"roomId": payload.RoomID})
	} else {
		h.hub.BroadcastAll(websocket.EventClearQuestions, nil)
	}

	return nil
}
