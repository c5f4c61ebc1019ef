package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyavichar/server/internal/handlers/dto"
	"github.com/vidyavichar/server/internal/models"
	"github.com/vidyavichar/server/internal/websocket"
)

// Role gates fire before any store access, so these run with a nil
// store: touching it would panic and fail the test.

func newChannel(hub *websocket.Hub, role models.Role) *websocket.Client {
	return websocket.NewClient(hub, nil, models.Principal{
		ID:       uuid.New(),
		Username: "someone",
		Role:     role,
	})
}

func mustEvent(t *testing.T, evtType websocket.EventType, payload interface{}) *websocket.Event {
	t.Helper()
	evt, err := websocket.NewEvent(evtType, payload)
	require.NoError(t, err)
	return evt
}

func TestPostQuestionRequiresStudent(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	client := newChannel(hub, models.RoleFaculty)
	evt := mustEvent(t, websocket.EventPostQuestion, dto.PostQuestionPayload{
		RoomID:   "ABCDEF",
		Question: "What is a B-tree?",
	})

	err := h.HandleEvent(client, evt)
	assert.Equal(t, websocket.ErrForbidden, err)
}

func TestPostQuestionDoesNotBroadcastOnAuthFailure(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	observer := newChannel(hub, models.RoleStudent)
	hub.JoinRoom(observer, "ABCDEF")

	sender := newChannel(hub, models.RoleTA)
	evt := mustEvent(t, websocket.EventPostQuestion, dto.PostQuestionPayload{
		RoomID:   "ABCDEF",
		Question: "What is a B-tree?",
	})

	err := h.HandleEvent(sender, evt)
	require.Error(t, err)

	select {
	case <-observer.Send:
		t.Fatal("observer received a broadcast for a rejected event")
	default:
	}
}

func TestManageQuestionRequiresFacultyOrTA(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	client := newChannel(hub, models.RoleStudent)
	evt := mustEvent(t, websocket.EventManageQuestion, dto.ManageQuestionPayload{
		RoomID:     "ABCDEF",
		QuestionID: uuid.NewString(),
	})

	err := h.HandleEvent(client, evt)
	assert.Equal(t, websocket.ErrForbidden, err)
}

func TestClearQuestionsRequiresFaculty(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	for _, role := range []models.Role{models.RoleStudent, models.RoleTA} {
		client := newChannel(hub, role)
		evt := mustEvent(t, websocket.EventClearQuestions, dto.ClearQuestionsPayload{RoomID: "ABCDEF"})

		err := h.HandleEvent(client, evt)
		assert.Equal(t, websocket.ErrForbidden, err, "role %s must not clear questions", role)
	}
}

func TestJoinRoomRejectsEmptyPayload(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	client := newChannel(hub, models.RoleStudent)
	evt := mustEvent(t, websocket.EventJoinRoom, dto.JoinRoomPayload{})

	err := h.HandleEvent(client, evt)
	assert.Equal(t, websocket.ErrInvalidEvent, err)
}

func TestUnknownEventIsIgnored(t *testing.T) {
	hub := websocket.NewHub()
	h := NewQuestionEventHandler(nil, hub)

	client := newChannel(hub, models.RoleStudent)
	evt := mustEvent(t, websocket.EventType("dance"), nil)

	assert.NoError(t, h.HandleEvent(client, evt))
}
