package websocket

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	// client -> server
	EventJoinRoom       EventType = "joinRoom"
	EventPostQuestion   EventType = "postQuestion"
	EventManageQuestion EventType = "manageQuestion"
	EventGetQuestions   EventType = "getQuestions"
	EventClearQuestions EventType = "clearQuestions"

	// server -> client
	EventQuestionPosted EventType = "questionPosted"
	EventUpdateQuestion EventType = "updateQuestion"
	EventDeleteQuestion EventType = "deleteQuestion"
	EventQuestions      EventType = "questions"
	EventJoinedRoom     EventType = "joinedRoom"
	EventError          EventType = "error"

	EventPing EventType = "ping"
	EventPong EventType = "pong"
)

// Event is the wire envelope for every message on a channel.
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewEvent(evtType EventType, payload interface{}) (*Event, error) {
	evt := &Event{Type: evtType, Timestamp: time.Now()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		evt.Data = data
	}
	return evt, nil
}
