package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionStatus string

const (
	StatusUnanswered QuestionStatus = "unanswered"
	StatusAnswered   QuestionStatus = "answered"
	StatusRejected   QuestionStatus = "rejected"
)

// ValidStatus reports whether s is one of the enumerated statuses.
// Unknown values submitted in a patch are dropped, not rejected.
func ValidStatus(s QuestionStatus) bool {
	switch s {
	case StatusUnanswered, StatusAnswered, StatusRejected:
		return true
	}
	return false
}

// ResolvedStatuses are the terminal statuses excluded from unanswered
// views.
var ResolvedStatuses = []QuestionStatus{StatusAnswered, StatusRejected}

type QuestionPriority string

const (
	PriorityNormal    QuestionPriority = "normal"
	PriorityImportant QuestionPriority = "important"
)

func ValidPriority(p QuestionPriority) bool {
	return p == PriorityNormal || p == PriorityImportant
}

const MaxQuestionLength = 500

type Question struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Text      string           `gorm:"not null;uniqueIndex:idx_questions_room_text" json:"text"`
	Author    string           `gorm:"default:'Anonymous'" json:"author"`
	RoomCode  string           `gorm:"not null;index;uniqueIndex:idx_questions_room_text" json:"roomId"`
	Status    QuestionStatus   `gorm:"default:'unanswered';check:status IN ('unanswered','answered','rejected')" json:"status"`
	Priority  QuestionPriority `gorm:"default:'normal';check:priority IN ('normal','important')" json:"priority"`
	Answer    string           `gorm:"default:''" json:"answer"`
	CreatedAt time.Time        `json:"createdAt"`
}
