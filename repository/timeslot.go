package repository

import (
	"context"
	"time"

	"github.com/aitimer/backend/domain"
)

// TimeSlotRepository is the read surface of the time-slot store. The
// aggregator only ever reads; both queries are keyed by owner and an
// inclusive date range.
type TimeSlotRepository interface {
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeSlot, error)
	ListMoods(ctx context.Context, userID string, start, end time.Time) ([]domain.MoodRecord, error)
}
