package repository

import (
	"context"

	"github.com/aitimer/backend/domain"
)

// ScheduleRepository is the narrow write surface this service owns: status
// transitions on existing slots and per-slot mood upserts. Slot creation and
// deletion stay with the scheduling editor.
type ScheduleRepository interface {
	GetSlot(ctx context.Context, userID, slotID string) (*domain.TimeSlot, error)
	UpdateSlotStatus(ctx context.Context, userID, slotID string, status domain.SlotStatus) (*domain.TimeSlot, error)
	UpsertMood(ctx context.Context, record *domain.MoodRecord) error
}
