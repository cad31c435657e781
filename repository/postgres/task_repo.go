package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed read-only task reference.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Task, error) {
	ids = dedupe(ids)
	tasks := make(map[string]domain.Task, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	const query = `
	SELECT id, user_id, name, type, category, weekly_target_hours,
	       is_high_frequency, is_overcome, created_at, updated_at
	FROM tasks
	WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "task lookup failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task domain.Task
		var category *string
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Name,
			&task.Type,
			&category,
			&task.WeeklyTarget,
			&task.HighFrequency,
			&task.Overcome,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, domain.WrapError(domain.ErrCodeUnavailable, "task scan failed", err)
		}
		task.Category = deref(category)
		tasks[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "task lookup failed", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetSubtasksByIDs(ctx context.Context, ids []string) (map[string]domain.Subtask, error) {
	ids = dedupe(ids)
	subtasks := make(map[string]domain.Subtask, len(ids))
	if len(ids) == 0 {
		return subtasks, nil
	}

	const query = `
	SELECT id, task_id, user_id, name, target_hours,
	       is_high_frequency, is_overcome, created_at, updated_at
	FROM subtasks
	WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "subtask lookup failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub domain.Subtask
		if err := rows.Scan(
			&sub.ID,
			&sub.TaskID,
			&sub.UserID,
			&sub.Name,
			&sub.TargetHours,
			&sub.HighFrequency,
			&sub.Overcome,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, domain.WrapError(domain.ErrCodeUnavailable, "subtask scan failed", err)
		}
		subtasks[sub.ID] = sub
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "subtask lookup failed", err)
	}
	return subtasks, nil
}
