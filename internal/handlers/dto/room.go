package dto

type CreateRoomRequest struct {
	RoomName    string `json:"roomName"`
	CreatorName string `json:"creatorName"`
	CreatorID   string `json:"creatorId"`
}

type JoinRoomRequest struct {
	Name          string `json:"name"`
	ParticipantID string `json:"participantId"`
}
