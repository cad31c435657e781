package domain

import "time"

// TaskType is the coarse classification used for category aggregation.
type TaskType string

const (
	TaskTypeStudy TaskType = "study"
	TaskTypeWork  TaskType = "work"
	TaskTypeLife  TaskType = "life"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeStudy, TaskTypeWork, TaskTypeLife:
		return true
	}
	return false
}

// Task is a recurring activity owned by a user. Tasks are created and edited
// by the task editor service; this engine only reads them to label aggregates.
type Task struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Type          TaskType  `json:"type"`
	Category      string    `json:"category,omitempty"`
	WeeklyTarget  float64   `json:"weekly_target_hours"`
	HighFrequency bool      `json:"is_high_frequency"`
	Overcome      bool      `json:"is_overcome"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Subtask is a child of a Task with its own hour budget. Flag overrides are
// nullable: when unset the parent task's flags apply.
type Subtask struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"task_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	TargetHours   float64   `json:"target_hours"`
	HighFrequency *bool     `json:"is_high_frequency,omitempty"`
	Overcome      *bool     `json:"is_overcome,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
