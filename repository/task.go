package repository

import (
	"context"

	"github.com/aitimer/backend/domain"
)

// TaskRepository is the read-only task/subtask reference consumed by the
// aggregator to label its output. Task CRUD belongs to the task editor
// service and is out of scope here.
type TaskRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Task, error)
	GetSubtasksByIDs(ctx context.Context, ids []string) (map[string]domain.Subtask, error)
}
