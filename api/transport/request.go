package transport

type SlotStatusRequest struct {
	Status string `json:"status"`
}

type MoodRequest struct {
	Mood string `json:"mood"`
}
