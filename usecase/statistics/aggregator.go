package statistics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/internal/period"
	"github.com/aitimer/backend/repository"
)

// Aggregator reduces raw time-slot and mood rows into a PeriodSummary. It is
// read-only against the primary store; its only side effect is opportunistic
// rollup-cache population, which is idempotent.
type Aggregator struct {
	slots   repository.TimeSlotRepository
	tasks   repository.TaskRepository
	rollups repository.RollupRepository
	clock   Clock
	logger  *zap.Logger
}

// NewAggregator wires the aggregator. rollups may be nil to disable caching.
func NewAggregator(
	slots repository.TimeSlotRepository,
	tasks repository.TaskRepository,
	rollups repository.RollupRepository,
	clock Clock,
	logger *zap.Logger,
) *Aggregator {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		slots:   slots,
		tasks:   tasks,
		rollups: rollups,
		clock:   clock,
		logger:  logger,
	}
}

// Summarize computes the full reduction for one user over one period. Week
// periods go through the rollup cache; cache failures degrade to
// recomputation, never to a request failure.
func (a *Aggregator) Summarize(ctx context.Context, userID string, p period.Period) (*domain.PeriodSummary, error) {
	if p.Key != "" && a.rollups != nil {
		cached, ok, err := a.rollups.Get(ctx, userID, p.Key)
		if err != nil {
			a.logger.Warn("rollup read failed, recomputing",
				zap.String("user_id", userID),
				zap.String("period", p.Key),
				zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	summary, err := a.compute(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	if p.Key != "" && a.rollups != nil {
		if err := a.rollups.Put(ctx, summary); err != nil {
			a.logger.Warn("rollup write failed",
				zap.String("user_id", userID),
				zap.String("period", p.Key),
				zap.Error(err))
		}
	}
	return summary, nil
}

func (a *Aggregator) compute(ctx context.Context, userID string, p period.Period) (*domain.PeriodSummary, error) {
	slots, err := a.slots.ListByRange(ctx, userID, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	moods, err := a.slots.ListMoods(ctx, userID, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subtaskIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.SubtaskID != "" {
			subtaskIDs = append(subtaskIDs, slot.SubtaskID)
		}
	}
	subtasks, err := a.tasks.GetSubtasksByIDs(ctx, subtaskIDs)
	if err != nil {
		return nil, err
	}

	// A slot may bind a subtask without a task id; the parent still labels it.
	taskIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.TaskID != "" {
			taskIDs = append(taskIDs, slot.TaskID)
		}
	}
	for _, sub := range subtasks {
		taskIDs = append(taskIDs, sub.TaskID)
	}
	tasks, err := a.tasks.GetByIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &domain.PeriodSummary{
		UserID:        userID,
		Period:        p.Key,
		StartDate:     p.Start.Format("2006-01-02"),
		EndDate:       p.End.Format("2006-01-02"),
		TaskHours:     map[string]float64{},
		CategoryHours: map[string]float64{},
		MoodCounts:    map[domain.Mood]int{},
		ComputedAt:    a.clock.Now().UTC(),
	}

	// Every date in range gets a day entry, zero activity included. Days is
	// sized up front and addressed by index so day updates always hit the
	// slice the summary carries.
	dates := p.Dates()
	summary.Days = make([]domain.DaySummary, len(dates))
	dayIndex := make(map[string]int, len(dates))
	for i, date := range dates {
		key := date.Format("2006-01-02")
		summary.Days[i] = domain.DaySummary{Date: key}
		dayIndex[key] = i
	}

	slotDates := make(map[string]string, len(slots))
	for _, slot := range slots {
		dateKey := slot.DateKey()
		slotDates[slot.ID] = dateKey
		i, known := dayIndex[dateKey]
		if !known {
			continue
		}
		day := &summary.Days[i]

		day.TotalSlots++
		completed := slot.IsCompleted()
		if completed {
			day.CompletedSlots++
			summary.CompletedSlots++
		}

		task, resolved := resolveTask(slot, tasks, subtasks)
		highFrequency, overcome := resolveFlags(slot, task, resolved, subtasks)
		if highFrequency {
			summary.HighFrequency.Total++
			if completed {
				summary.HighFrequency.Completed++
			}
		}
		if overcome {
			summary.Overcome.Total++
			if completed {
				summary.Overcome.Completed++
			}
		}

		if slot.AIRecommended {
			summary.AIRecommended++
			if completed {
				summary.AICompleted++
			}
		}

		if completed && resolved {
			summary.TaskHours[task.Name]++
			summary.CategoryHours[string(task.Type)]++
		}
	}

	for _, rec := range moods {
		if !rec.Mood.Valid() {
			continue
		}
		dateKey, known := slotDates[rec.SlotID]
		if !known {
			continue
		}
		summary.MoodCounts[rec.Mood]++
		if i, known := dayIndex[dateKey]; known {
			day := &summary.Days[i]
			if day.MoodCounts == nil {
				day.MoodCounts = map[domain.Mood]int{}
			}
			day.MoodCounts[rec.Mood]++
		}
	}

	// Each completed slot is exactly one hour-equivalent; the time_range
	// label is never parsed for duration.
	summary.TotalHours = float64(summary.CompletedSlots)
	for _, day := range summary.Days {
		summary.TotalSlots += day.TotalSlots
	}
	if summary.TotalSlots > 0 {
		summary.CompletionRate = float64(summary.CompletedSlots) / float64(summary.TotalSlots)
	}

	return summary, nil
}

func resolveTask(slot domain.TimeSlot, tasks map[string]domain.Task, subtasks map[string]domain.Subtask) (domain.Task, bool) {
	if slot.TaskID != "" {
		if task, ok := tasks[slot.TaskID]; ok {
			return task, true
		}
	}
	if slot.SubtaskID != "" {
		if sub, ok := subtasks[slot.SubtaskID]; ok {
			if task, ok := tasks[sub.TaskID]; ok {
				return task, true
			}
		}
	}
	return domain.Task{}, false
}

// resolveFlags applies subtask overrides on top of the parent task's flags.
func resolveFlags(slot domain.TimeSlot, task domain.Task, resolved bool, subtasks map[string]domain.Subtask) (highFrequency, overcome bool) {
	if resolved {
		highFrequency = task.HighFrequency
		overcome = task.Overcome
	}
	if slot.SubtaskID != "" {
		if sub, ok := subtasks[slot.SubtaskID]; ok {
			if sub.HighFrequency != nil {
				highFrequency = *sub.HighFrequency
			}
			if sub.Overcome != nil {
				overcome = *sub.Overcome
			}
		}
	}
	return highFrequency, overcome
}

// Clock supplies the current time so periods and timestamps can be fixed in
// tests instead of reading ambient server time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
