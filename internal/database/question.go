package database

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/vidyavichar/server/internal/models"
)

// CreateQuestion persists a new question scoped to a room. Text and
// author are trimmed before storage; an identical text already present
// in the room is a conflict.
func (d *Database) CreateQuestion(roomCode, text, author string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)
	if roomCode == "" || text == "" || utf8.RuneCountInString(text) > models.MaxQuestionLength {
		return nil, ErrValidation
	}
	if author == "" {
		author = "Anonymous"
	}

	if _, err := d.GetRoom(roomCode); err != nil {
		return nil, err
	}

	var existing models.Question
	err := d.db.Where("room_code = ? AND text = ?", roomCode, text).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	question := &models.Question{
		Text:      text,
		Author:    author,
		RoomCode:  roomCode,
		Status:    models.StatusUnanswered,
		Priority:  models.PriorityNormal,
		CreatedAt: time.Now(),
	}

	if err := d.db.Create(question).Error; err != nil {
		// unique index backstop for two identical posts racing past
		// the lookup above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return question, nil
}

type QuestionFilter struct {
	RoomCode string
	Status   string
}

// ListQuestions returns questions newest first, optionally filtered by
// room and status.
func (d *Database) ListQuestions(filter QuestionFilter) ([]models.Question, error) {
	query := d.db.Model(&models.Question{})
	if filter.RoomCode != "" {
		query = query.Where("room_code = ?", filter.RoomCode)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var questions []models.Question
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (d *Database) GetQuestion(id string) (*models.Question, error) {
	var question models.Question
	err := d.db.First(&question, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion applies an already validated column map and returns
// the updated row. Concurrent updates are last-write-wins.
func (d *Database) UpdateQuestion(id string, updates map[string]interface{}) (*models.Question, error) {
	question, err := d.GetQuestion(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return question, nil
	}
	if err := d.db.Model(question).Updates(updates).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// RemoveQuestion deletes one question, reporting whether it existed.
func (d *Database) RemoveQuestion(id string) (bool, error) {
	result := d.db.Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearQuestions bulk-deletes questions, optionally scoped to a room
// and optionally only those in a resolved status. Returns the number
// of rows removed.
func (d *Database) ClearQuestions(roomCode string, onlyResolved bool) (int64, error) {
	query := d.db
	if roomCode != "" {
		query = query.Where("room_code = ?", roomCode)
	}
	if onlyResolved {
		query = query.Where("status IN ?", models.ResolvedStatuses)
	} else if roomCode == "" {
		query = query.Where("1 = 1")
	}

	result := query.Delete(&models.Question{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
