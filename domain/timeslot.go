package domain

import "time"

// SlotStatus is the lifecycle state of a time slot.
type SlotStatus string

const (
	SlotEmpty      SlotStatus = "empty"
	SlotPending    SlotStatus = "pending"
	SlotInProgress SlotStatus = "in_progress"
	SlotCompleted  SlotStatus = "completed"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotEmpty, SlotPending, SlotInProgress, SlotCompleted:
		return true
	}
	return false
}

// TimeSlot is the atomic scheduling unit. The TimeRange label is opaque text
// ("07:30-08:30"): it is never parsed for duration, every completed slot
// counts as exactly one hour-equivalent regardless of its label.
type TimeSlot struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Date          time.Time  `json:"date"`
	TimeRange     string     `json:"time_range"`
	TaskID        string     `json:"task_id,omitempty"`
	SubtaskID     string     `json:"subtask_id,omitempty"`
	Status        SlotStatus `json:"status"`
	AIRecommended bool       `json:"is_ai_recommended"`
	Note          string     `json:"note,omitempty"`
	AITip         string     `json:"ai_tip,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *TimeSlot) IsCompleted() bool {
	return s != nil && s.Status == SlotCompleted
}

// DateKey returns the slot's calendar date as YYYY-MM-DD.
func (s *TimeSlot) DateKey() string {
	return s.Date.Format("2006-01-02")
}
