package database

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyavichar/server/internal/models"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomCodeLength = 6

func generateRoomCode() (string, error) {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(roomCodeAlphabet[int(b)%len(roomCodeAlphabet)])
	}
	return sb.String(), nil
}

var newRoomCode = generateRoomCode

// errCodeSpaceExhausted is a server-side allocation failure, not a
// caller mistake; it must not surface as a validation error.
var errCodeSpaceExhausted = errors.New("could not allocate a unique room code")

// CreateRoom generates a unique share code, creates the room and adds
// the creator as its first participant. Code collisions are retried.
func (d *Database) CreateRoom(name, creatorName string, creatorID uuid.UUID) (*models.Room, error) {
	name = strings.TrimSpace(name)
	creatorName = strings.TrimSpace(creatorName)
	if name == "" || creatorName == "" || creatorID == uuid.Nil {
		return nil, ErrValidation
	}

	for attempt := 0; attempt < 5; attempt++ {
		code, err := newRoomCode()
		if err != nil {
			return nil, err
		}

		var existing models.Room
		err = d.db.Where("code = ?", code).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		room := &models.Room{
			Code:      code,
			Name:      name,
			CreatedBy: creatorName,
			CreatorID: creatorID,
			IsActive:  true,
			CreatedAt: time.Now(),
			Participants: []models.Participant{
				{Name: creatorName, ParticipantID: creatorID.String(), JoinedAt: time.Now()},
			},
		}

		if err := d.db.Create(room).Error; err != nil {
			// unique index race on the code, take another one
			continue
		}
		return room, nil
	}

	return nil, errCodeSpaceExhausted
}

func (d *Database) GetRoom(code string) (*models.Room, error) {
	var room models.Room
	err := d.db.Preload("Participants").Where("code = ?", code).First(&room).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// JoinRoom admits a participant. Rejoining with a name that is already
// present never duplicates the record; a participant stored without an
// identity gets it backfilled.
func (d *Database) JoinRoom(code, name, participantID string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" || participantID == "" {
		return nil, ErrValidation
	}

	room, err := d.GetRoom(code)
	if err != nil {
		return nil, err
	}

	for i := range room.Participants {
		p := &room.Participants[i]
		if p.Name != name {
			continue
		}
		if p.ParticipantID == "" {
			p.ParticipantID = participantID
			if err := d.db.Model(p).Update("participant_id", participantID).Error; err != nil {
				return nil, err
			}
		}
		return room, nil
	}

	participant := models.Participant{
		RoomID:        room.ID,
		Name:          name,
		ParticipantID: participantID,
		JoinedAt:      time.Now(),
	}
	if err := d.db.Create(&participant).Error; err != nil {
		return nil, err
	}
	room.Participants = append(room.Participants, participant)

	return room, nil
}

// IsParticipant is the authorization gate for room-scoped realtime
// traffic.
func (d *Database) IsParticipant(code, participantID string) (bool, error) {
	room, err := d.GetRoom(code)
	if err != nil {
		return false, err
	}
	for _, p := range room.Participants {
		if p.ParticipantID == participantID {
			return true, nil
		}
	}
	return false, nil
}
