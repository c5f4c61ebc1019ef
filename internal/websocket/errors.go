package websocket

import "errors"

var (
	ErrClientQueueFull  = errors.New("client message queue is full")
	ErrInvalidEvent     = errors.New("invalid event payload")
	ErrForbidden        = errors.New("operation not allowed for this role")
	ErrRoomNotFound     = errors.New("room not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotInRoom        = errors.New("you must join the room first")
)
