package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/repository"
)

type timeSlotRepository struct {
	pool *pgxpool.Pool
}

// NewTimeSlotRepository returns a Postgres-backed implementation of TimeSlotRepository.
func NewTimeSlotRepository(pool *pgxpool.Pool) repository.TimeSlotRepository {
	return &timeSlotRepository{pool: pool}
}

func (r *timeSlotRepository) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeSlot, error) {
	const query = `
	SELECT id, user_id, slot_date, time_range, task_id, subtask_id, status,
	       is_ai_recommended, note, ai_tip, created_at, updated_at
	FROM time_slots
	WHERE user_id = $1
	  AND slot_date BETWEEN $2 AND $3
	ORDER BY slot_date, time_range, id
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "time slot query failed", err)
	}
	defer rows.Close()

	var slots []domain.TimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "time slot query failed", err)
	}
	return slots, nil
}

func (r *timeSlotRepository) ListMoods(ctx context.Context, userID string, start, end time.Time) ([]domain.MoodRecord, error) {
	const query = `
	SELECT m.user_id, m.slot_id, m.mood, m.recorded_at
	FROM mood_records m
	JOIN time_slots s ON s.id = m.slot_id
	WHERE m.user_id = $1
	  AND s.slot_date BETWEEN $2 AND $3
	ORDER BY m.slot_id
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "mood query failed", err)
	}
	defer rows.Close()

	var records []domain.MoodRecord
	for rows.Next() {
		var rec domain.MoodRecord
		if err := rows.Scan(&rec.UserID, &rec.SlotID, &rec.Mood, &rec.RecordedAt); err != nil {
			return nil, domain.WrapError(domain.ErrCodeUnavailable, "mood scan failed", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "mood query failed", err)
	}
	return records, nil
}

func scanTimeSlot(row interface {
	Scan(dest ...interface{}) error
}) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var (
		taskID    *string
		subtaskID *string
		note      *string
		aiTip     *string
	)

	if err := row.Scan(
		&slot.ID,
		&slot.UserID,
		&slot.Date,
		&slot.TimeRange,
		&taskID,
		&subtaskID,
		&slot.Status,
		&slot.AIRecommended,
		&note,
		&aiTip,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "time slot scan failed", err)
	}

	slot.TaskID = deref(taskID)
	slot.SubtaskID = deref(subtaskID)
	slot.Note = deref(note)
	slot.AITip = deref(aiTip)
	return &slot, nil
}
