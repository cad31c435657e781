// Package schedule owns the narrow write path this service exposes: slot
// status transitions and mood logging. Each write invalidates the weekly
// rollup covering the slot's date so cached aggregates never trail the raw
// data past the next read.
package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/internal/period"
	"github.com/aitimer/backend/repository"
)

type UseCase struct {
	slots   repository.ScheduleRepository
	rollups repository.RollupRepository
	loc     *time.Location
	logger  *zap.Logger
}

func New(slots repository.ScheduleRepository, rollups repository.RollupRepository, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		slots:   slots,
		rollups: rollups,
		loc:     loc,
		logger:  logger,
	}
}

func (uc *UseCase) UpdateSlotStatus(ctx context.Context, userID, slotID string, status domain.SlotStatus) (*domain.TimeSlot, error) {
	if !status.Valid() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid slot status", nil)
	}

	slot, err := uc.slots.UpdateSlotStatus(ctx, userID, slotID, status)
	if err != nil {
		return nil, err
	}

	uc.invalidateRollup(ctx, userID, slot.Date)
	return slot, nil
}

// LogMood upserts the slot's mood record; logging twice overwrites.
func (uc *UseCase) LogMood(ctx context.Context, userID, slotID string, mood domain.Mood) (*domain.MoodRecord, error) {
	if !mood.Valid() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid mood", nil)
	}

	slot, err := uc.slots.GetSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}

	record := &domain.MoodRecord{
		UserID: userID,
		SlotID: slot.ID,
		Mood:   mood,
	}
	if err := uc.slots.UpsertMood(ctx, record); err != nil {
		return nil, err
	}

	uc.invalidateRollup(ctx, userID, slot.Date)
	return record, nil
}

// invalidateRollup is best-effort: a failed delete leaves a stale entry that
// expires via TTL or the janitor, so the write itself never fails on it.
func (uc *UseCase) invalidateRollup(ctx context.Context, userID string, date time.Time) {
	if uc.rollups == nil {
		return
	}
	year, week := date.In(uc.loc).ISOWeek()
	key := period.Key(year, week)
	if err := uc.rollups.Invalidate(ctx, userID, key); err != nil {
		uc.logger.Warn("rollup invalidation failed",
			zap.String("user_id", userID),
			zap.String("period", key),
			zap.Error(err))
	}
}
