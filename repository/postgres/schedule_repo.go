package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/repository"
)

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns the Postgres-backed slot write surface.
func NewScheduleRepository(pool *pgxpool.Pool) repository.ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) GetSlot(ctx context.Context, userID, slotID string) (*domain.TimeSlot, error) {
	const query = `
	SELECT id, user_id, slot_date, time_range, task_id, subtask_id, status,
	       is_ai_recommended, note, ai_tip, created_at, updated_at
	FROM time_slots
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, slotID, userID)
	slot, err := scanTimeSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (r *scheduleRepository) UpdateSlotStatus(ctx context.Context, userID, slotID string, status domain.SlotStatus) (*domain.TimeSlot, error) {
	const query = `
	UPDATE time_slots
	SET status = $3,
	    updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, slot_date, time_range, task_id, subtask_id, status,
	          is_ai_recommended, note, ai_tip, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, slotID, userID, status)
	slot, err := scanTimeSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (r *scheduleRepository) UpsertMood(ctx context.Context, record *domain.MoodRecord) error {
	if record == nil || record.SlotID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO mood_records (user_id, slot_id, mood, recorded_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (slot_id) DO UPDATE
	SET mood = EXCLUDED.mood,
	    recorded_at = NOW()
	RETURNING recorded_at
	`
	if err := r.pool.QueryRow(ctx, query,
		record.UserID,
		record.SlotID,
		record.Mood,
	).Scan(&record.RecordedAt); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "mood upsert failed", err)
	}
	return nil
}
