package dto

import "github.com/vidyavichar/server/internal/models"

type CreateQuestionRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	RoomID string `json:"roomId"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

// QuestionPatch is a partial update. A nil field was absent from the
// request and stays untouched. Unrecognized status or priority values
// are dropped here, at the boundary, rather than rejected.
type QuestionPatch struct {
	Status   *string `json:"status"`
	Answer   *string `json:"answer"`
	Priority *string `json:"priority"`
}

// Updates converts the patch into a column map containing only the
// recognized fields.
func (p QuestionPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Status != nil && models.ValidStatus(models.QuestionStatus(*p.Status)) {
		updates["status"] = *p.Status
	}
	if p.Priority != nil && models.ValidPriority(models.QuestionPriority(*p.Priority)) {
		updates["priority"] = *p.Priority
	}
	if p.Answer != nil {
		updates["answer"] = *p.Answer
	}
	return updates
}

// Socket event payloads.

type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type PostQuestionPayload struct {
	RoomID   string `json:"roomId"`
	Question string `json:"question"`
}

type ManageQuestionPayload struct {
	RoomID     string  `json:"roomId"`
	QuestionID string  `json:"questionId"`
	Status     *string `json:"status"`
	Answer     *string `json:"answer"`
	Priority   *string `json:"priority"`
}

func (p ManageQuestionPayload) Patch() QuestionPatch {
	return QuestionPatch{Status: p.Status, Answer: p.Answer, Priority: p.Priority}
}

type GetQuestionsPayload struct {
	RoomID string `json:"roomId"`
	Status string `json:"status"`
}

type ClearQuestionsPayload struct {
	RoomID       string `json:"roomId"`
	OnlyAnswered bool   `json:"onlyAnswered"`
}
