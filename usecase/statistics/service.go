package statistics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/internal/period"
)

// Service is the statistics facade: it resolves the requested period
// (defaulting to the current ISO week), runs the aggregator and derives the
// user-facing shapes. A user with zero activity gets all-zero structures,
// never an error.
//
// Reads are snapshot-consistent per query, not per request: slot writes by
// the same user racing an in-flight aggregation may land in either the pre-
// or post-write result.
type Service struct {
	agg    *Aggregator
	model  EfficiencyModel
	clock  Clock
	loc    *time.Location
	logger *zap.Logger
}

func NewService(agg *Aggregator, model EfficiencyModel, clock Clock, loc *time.Location, logger *zap.Logger) *Service {
	if model == nil {
		model = RuleBasedModel{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		agg:    agg,
		model:  model,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

func (s *Service) GetWeeklyOverview(ctx context.Context, userID, yearWeek string) (*domain.WeeklyOverview, error) {
	summary, err := s.summarizeWeek(ctx, userID, yearWeek)
	if err != nil {
		return nil, err
	}
	overview := BuildOverview(summary)
	return &overview, nil
}

func (s *Service) GetWeeklyChart(ctx context.Context, userID, yearWeek string) (*domain.WeeklyChart, error) {
	summary, err := s.summarizeWeek(ctx, userID, yearWeek)
	if err != nil {
		return nil, err
	}
	chart := BuildChart(summary)
	return &chart, nil
}

// GetTaskHours returns completed hours keyed by task name. Missing keys mean
// zero; the map is never nil.
func (s *Service) GetTaskHours(ctx context.Context, userID, yearWeek string) (map[string]float64, error) {
	summary, err := s.summarizeWeek(ctx, userID, yearWeek)
	if err != nil {
		return nil, err
	}
	return summary.TaskHours, nil
}

// GetCategoryHours returns completed hours keyed by task type.
func (s *Service) GetCategoryHours(ctx context.Context, userID, yearWeek string) (map[string]float64, error) {
	summary, err := s.summarizeWeek(ctx, userID, yearWeek)
	if err != nil {
		return nil, err
	}
	return summary.CategoryHours, nil
}

func (s *Service) GetEfficiencyAnalysis(ctx context.Context, userID string, days int) (*domain.EfficiencyAnalysis, error) {
	p, err := period.LastNDays(days, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}
	summary, err := s.agg.Summarize(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	analysis := BuildEfficiency(summary, s.model)
	return &analysis, nil
}

func (s *Service) GetMoodTrend(ctx context.Context, userID string, days int) (*domain.MoodTrend, error) {
	p, err := period.LastNDays(days, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}
	summary, err := s.agg.Summarize(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	trend := BuildMoodTrend(summary)
	return &trend, nil
}

// GetComparison compares two weeks. When previousWeek is empty it defaults to
// the week immediately before currentWeek.
func (s *Service) GetComparison(ctx context.Context, userID, currentWeek, previousWeek string) (*domain.ComparisonAnalysis, error) {
	currentPeriod, err := period.Resolve(currentWeek, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}

	var previousPeriod period.Period
	if previousWeek == "" {
		previousPeriod = currentPeriod.Previous()
	} else {
		previousPeriod, err = period.FromYearWeek(previousWeek, s.loc)
		if err != nil {
			return nil, err
		}
	}

	current, err := s.agg.Summarize(ctx, userID, currentPeriod)
	if err != nil {
		return nil, err
	}
	previous, err := s.agg.Summarize(ctx, userID, previousPeriod)
	if err != nil {
		return nil, err
	}

	cmp := BuildComparison(current, previous)
	return &cmp, nil
}

// GetDashboard runs one aggregation and derives all four weekly views from
// it. Composition is all-or-nothing: a canceled context aborts the whole
// request rather than returning a partial structure.
func (s *Service) GetDashboard(ctx context.Context, userID, yearWeek string) (*domain.Dashboard, error) {
	summary, err := s.summarizeWeek(ctx, userID, yearWeek)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Overview:    BuildOverview(summary),
		Chart:       BuildChart(summary),
		Efficiency:  BuildEfficiency(summary, s.model),
		Mood:        BuildMoodTrend(summary),
		GeneratedAt: s.clock.Now().UTC(),
	}, nil
}

func (s *Service) summarizeWeek(ctx context.Context, userID, yearWeek string) (*domain.PeriodSummary, error) {
	p, err := period.Resolve(yearWeek, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}
	return s.agg.Summarize(ctx, userID, p)
}
