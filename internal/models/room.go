package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	Code      string    `gorm:"uniqueIndex;not null" json:"roomId"`
	Name      string    `gorm:"not null" json:"roomName"`
	CreatedBy string    `gorm:"default:'Anonymous'" json:"createdBy"`
	CreatorID uuid.UUID `json:"-"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Participants []Participant `gorm:"foreignKey:RoomID" json:"participants"`
}

type Participant struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	RoomID        uuid.UUID `gorm:"not null;index" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	ParticipantID string    `json:"participantId"`
	JoinedAt      time.Time `json:"joinedAt"`
}
