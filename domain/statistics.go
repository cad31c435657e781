package domain

import (
	"fmt"
	"time"
)

// Ratio is an exact completed/total pair. It is kept as two integers so the
// display form never loses the raw counts; an empty ratio renders as "0/0".
type Ratio struct {
	Completed int
	Total     int
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Completed, r.Total)
}

// Percent returns the completion percentage on a 0-100 scale, 0 when empty.
func (r Ratio) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Completed) / float64(r.Total) * 100
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.String())), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var completed, total int
	if _, err := fmt.Sscanf(string(data), "\"%d/%d\"", &completed, &total); err != nil {
		return fmt.Errorf("malformed ratio %s: %w", data, err)
	}
	r.Completed = completed
	r.Total = total
	return nil
}

// DaySummary is the raw per-day reduction inside a PeriodSummary.
type DaySummary struct {
	Date           string       `json:"date"`
	CompletedSlots int          `json:"completed_slots"`
	TotalSlots     int          `json:"total_slots"`
	MoodCounts     map[Mood]int `json:"mood_counts,omitempty"`
}

// PeriodSummary is the aggregator's full output for one user and one resolved
// date range. It is the unit cached by the rollup store and is always
// reproducible from the raw time-slot and mood data; missing map keys mean
// zero, never a lookup error.
type PeriodSummary struct {
	UserID    string `json:"user_id"`
	Period    string `json:"period,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalHours     float64 `json:"total_hours"`
	CompletedSlots int     `json:"completed_slots"`
	TotalSlots     int     `json:"total_slots"`
	CompletionRate float64 `json:"completion_rate"` // 0..1 fraction, 0 when TotalSlots is 0

	TaskHours     map[string]float64 `json:"task_hours"`
	CategoryHours map[string]float64 `json:"category_hours"`
	Days          []DaySummary       `json:"days"`

	HighFrequency Ratio `json:"high_frequency_ratio"`
	Overcome      Ratio `json:"overcome_ratio"`

	AIRecommended int `json:"ai_recommended_slots"`
	AICompleted   int `json:"ai_completed_slots"`

	MoodCounts map[Mood]int `json:"mood_counts"`

	ComputedAt time.Time `json:"computed_at"`
}

// AIAcceptanceRate is the rounded percentage of AI-recommended slots the user
// completed, 0 when no slot in the period was AI-recommended.
func (s *PeriodSummary) AIAcceptanceRate() int {
	if s == nil || s.AIRecommended == 0 {
		return 0
	}
	rate := float64(s.AICompleted) / float64(s.AIRecommended) * 100
	return int(rate + 0.5)
}

// WeeklyOverview bundles the headline numbers for one period.
type WeeklyOverview struct {
	Period             string  `json:"period,omitempty"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalHours         float64 `json:"total_hours"`
	HighFrequencyRatio Ratio   `json:"high_frequency_ratio"`
	OvercomeRatio      Ratio   `json:"overcome_ratio"`
	AIAcceptanceRate   int     `json:"ai_acceptance_rate"`
}

// DailyStat is one bar of the weekly chart.
type DailyStat struct {
	Date           string  `json:"date"`
	Hours          float64 `json:"hours"`
	CompletedSlots int     `json:"completed_slots"`
	TotalSlots     int     `json:"total_slots"`
	CompletionRate float64 `json:"completion_rate"` // 0..100 percent for chart rendering
	DominantMood   *Mood   `json:"dominant_mood,omitempty"`
}

// CategoryShare is one slice of the category donut.
type CategoryShare struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type WeeklyChart struct {
	Period     string          `json:"period,omitempty"`
	Daily      []DailyStat     `json:"daily"`
	Categories []CategoryShare `json:"categories"`
}

// EfficiencyAnalysis is a composite score over three normalized metrics plus
// rule-based focus/distraction windows.
type EfficiencyAnalysis struct {
	Score              float64  `json:"score"`
	AIAcceptanceRate   int      `json:"ai_acceptance_rate"`
	HighFrequencyRate  float64  `json:"high_frequency_rate"`
	OvercomeRate       float64  `json:"overcome_rate"`
	FocusPeriods       []string `json:"focus_periods"`
	DistractionPeriods []string `json:"distraction_periods"`
	Trend              string   `json:"trend"`
}

type MoodTrend struct {
	Trend        string       `json:"trend"`
	Distribution map[Mood]int `json:"distribution"`
	DominantMood *Mood        `json:"dominant_mood,omitempty"`
	Suggestions  []string     `json:"suggestions"`
}

// ComparisonAnalysis reports deltas between two independently resolved periods.
type ComparisonAnalysis struct {
	CurrentPeriod      string         `json:"current_period"`
	PreviousPeriod     string         `json:"previous_period"`
	HoursChangePercent float64        `json:"hours_change_percent"`
	HoursDelta         float64        `json:"hours_delta"`
	AIAcceptanceDelta  int            `json:"ai_acceptance_delta"`
	Insights           []string       `json:"insights"`
	Current            WeeklyOverview `json:"current"`
	Previous           WeeklyOverview `json:"previous"`
}

// Dashboard composes the four weekly views in a single round trip.
type Dashboard struct {
	Overview    WeeklyOverview     `json:"overview"`
	Chart       WeeklyChart        `json:"chart"`
	Efficiency  EfficiencyAnalysis `json:"efficiency"`
	Mood        MoodTrend          `json:"mood"`
	GeneratedAt time.Time          `json:"generated_at"`
}
