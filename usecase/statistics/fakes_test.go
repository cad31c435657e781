package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aitimer/backend/domain"
)

// fakeClock pins "now" so the current-week default is deterministic.
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeSlotRepo struct {
	slots []domain.TimeSlot
	moods []domain.MoodRecord
	err   error

	listCalls int
}

func (r *fakeSlotRepo) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeSlot, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.listCalls++
	var out []domain.TimeSlot
	for _, slot := range r.slots {
		if slot.UserID != userID {
			continue
		}
		if slot.Date.Before(start) || slot.Date.After(end) {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

func (r *fakeSlotRepo) ListMoods(ctx context.Context, userID string, start, end time.Time) ([]domain.MoodRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	byID := make(map[string]domain.TimeSlot, len(r.slots))
	for _, slot := range r.slots {
		byID[slot.ID] = slot
	}
	var out []domain.MoodRecord
	for _, rec := range r.moods {
		if rec.UserID != userID {
			continue
		}
		slot, ok := byID[rec.SlotID]
		if !ok || slot.Date.Before(start) || slot.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[string]domain.Task
	subs  map[string]domain.Subtask
}

func (r *fakeTaskRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Task, error) {
	out := make(map[string]domain.Task)
	for _, id := range ids {
		if task, ok := r.tasks[id]; ok {
			out[id] = task
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) GetSubtasksByIDs(ctx context.Context, ids []string) (map[string]domain.Subtask, error) {
	out := make(map[string]domain.Subtask)
	for _, id := range ids {
		if sub, ok := r.subs[id]; ok {
			out[id] = sub
		}
	}
	return out, nil
}

type fakeRollupRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.PeriodSummary
	hits    int
	puts    int
	getErr  error
	putErr  error
}

func newFakeRollupRepo() *fakeRollupRepo {
	return &fakeRollupRepo{entries: make(map[string]*domain.PeriodSummary)}
}

func (r *fakeRollupRepo) Get(ctx context.Context, userID, periodKey string) (*domain.PeriodSummary, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, false, r.getErr
	}
	summary, ok := r.entries[userID+":"+periodKey]
	if ok {
		r.hits++
	}
	return summary, ok, nil
}

func (r *fakeRollupRepo) Put(ctx context.Context, summary *domain.PeriodSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	r.entries[summary.UserID+":"+summary.Period] = summary
	return nil
}

func (r *fakeRollupRepo) Invalidate(ctx context.Context, userID, periodKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID+":"+periodKey)
	return nil
}

var slotSeq int

func newSlot(userID string, day time.Time, status domain.SlotStatus, opts ...func(*domain.TimeSlot)) domain.TimeSlot {
	slotSeq++
	slot := domain.TimeSlot{
		ID:        fmt.Sprintf("slot-%d", slotSeq),
		UserID:    userID,
		Date:      day,
		TimeRange: "07:30-08:30",
		Status:    status,
	}
	for _, opt := range opts {
		opt(&slot)
	}
	return slot
}

func withTask(taskID string) func(*domain.TimeSlot) {
	return func(s *domain.TimeSlot) { s.TaskID = taskID }
}

func withSubtask(subtaskID string) func(*domain.TimeSlot) {
	return func(s *domain.TimeSlot) { s.SubtaskID = subtaskID }
}

func aiRecommended() func(*domain.TimeSlot) {
	return func(s *domain.TimeSlot) { s.AIRecommended = true }
}
