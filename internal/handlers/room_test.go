package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Input validation fires before the store is touched, so these run
// with a nil store.

func postJSON(t *testing.T, handler gin.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestCreateRoomMissingName(t *testing.T) {
	h := NewRoomHandler(nil)

	w := postJSON(t, h.CreateRoom, "/rooms/create", `{"creatorName":"prof","creatorId":"6f9619ff-8b86-4d01-b42d-00cf4fc964ff"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "roomName is required")
}

func TestCreateRoomMissingCreator(t *testing.T) {
	h := NewRoomHandler(nil)

	w := postJSON(t, h.CreateRoom, "/rooms/create", `{"roomName":"CS101","creatorId":"6f9619ff-8b86-4d01-b42d-00cf4fc964ff"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "creatorName is required")
}

func TestCreateRoomBadCreatorID(t *testing.T) {
	h := NewRoomHandler(nil)

	w := postJSON(t, h.CreateRoom, "/rooms/create", `{"roomName":"CS101","creatorName":"prof","creatorId":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "creatorId is required")
}

func TestJoinRoomMissingRoomID(t *testing.T) {
	h := NewRoomHandler(nil)

	w := postJSON(t, h.JoinRoom, "/rooms/join", `{"name":"alice","participantId":"p-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "roomId is required")
}

func TestJoinRoomMissingFields(t *testing.T) {
	h := NewRoomHandler(nil)

	w := postJSON(t, h.JoinRoom, "/rooms/join?roomId=ABCDEF", `{"participantId":"p-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	w = postJSON(t, h.JoinRoom, "/rooms/join?roomId=ABCDEF", `{"name":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "participantId is required")
}

func TestShowRoomMissingRoomID(t *testing.T) {
	h := NewRoomHandler(nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/rooms/show", nil)
	h.ShowRoom(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "roomId is required")
}
