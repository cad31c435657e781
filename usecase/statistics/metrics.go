package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/aitimer/backend/domain"
)

// categoryPalette colors donut slices by category ordinal, cycling when
// categories outnumber the palette. Assignment is deterministic for a given
// category ordering.
var categoryPalette = []string{
	"#4F8EF7",
	"#34C77B",
	"#F7B24F",
	"#E85D75",
	"#9B6EF3",
	"#4FC3DC",
}

var moodSuggestions = map[domain.Mood][]string{
	domain.MoodHappy: {
		"Your mood has been great, keep the current rhythm going.",
		"Consider scheduling a stretch task while momentum is high.",
	},
	domain.MoodFocused: {
		"Deep-focus sessions are working, protect those time slots.",
		"Batch similar tasks together to extend your focus streaks.",
	},
	domain.MoodTired: {
		"Fatigue is showing up often, plan shorter sessions with breaks.",
		"Move demanding tasks to the hours you usually feel fresh.",
	},
	domain.MoodStressed: {
		"Stress is frequent lately, leave buffer slots between tasks.",
		"Try starting the day with a small, easily completed task.",
	},
	domain.MoodExcited: {
		"Channel the energy into your overcome tasks while it lasts.",
	},
}

// BuildOverview extracts the headline numbers from a summary.
func BuildOverview(s *domain.PeriodSummary) domain.WeeklyOverview {
	return domain.WeeklyOverview{
		Period:             s.Period,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		TotalHours:         s.TotalHours,
		HighFrequencyRatio: s.HighFrequency,
		OvercomeRatio:      s.Overcome,
		AIAcceptanceRate:   s.AIAcceptanceRate(),
	}
}

// BuildChart produces the daily bar series and the category donut.
func BuildChart(s *domain.PeriodSummary) domain.WeeklyChart {
	chart := domain.WeeklyChart{
		Period:     s.Period,
		Daily:      make([]domain.DailyStat, 0, len(s.Days)),
		Categories: make([]domain.CategoryShare, 0, len(s.CategoryHours)),
	}

	for _, day := range s.Days {
		stat := domain.DailyStat{
			Date:           day.Date,
			Hours:          float64(day.CompletedSlots),
			CompletedSlots: day.CompletedSlots,
			TotalSlots:     day.TotalSlots,
			DominantMood:   domain.DominantMood(day.MoodCounts),
		}
		if day.TotalSlots > 0 {
			stat.CompletionRate = round1(float64(day.CompletedSlots) / float64(day.TotalSlots) * 100)
		}
		chart.Daily = append(chart.Daily, stat)
	}

	names := make([]string, 0, len(s.CategoryHours))
	for name := range s.CategoryHours {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		hi, hj := s.CategoryHours[names[i]], s.CategoryHours[names[j]]
		if hi != hj {
			return hi > hj
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		hours := s.CategoryHours[name]
		share := domain.CategoryShare{
			Name:  name,
			Hours: hours,
			Color: categoryPalette[i%len(categoryPalette)],
		}
		if s.TotalHours > 0 {
			share.Percentage = round1(hours / s.TotalHours * 100)
		}
		chart.Categories = append(chart.Categories, share)
	}

	return chart
}

// BuildEfficiency scores the period through the given model.
func BuildEfficiency(s *domain.PeriodSummary, model EfficiencyModel) domain.EfficiencyAnalysis {
	metrics := Metrics{
		AIAcceptanceRate:  s.AIAcceptanceRate(),
		HighFrequencyRate: round1(s.HighFrequency.Percent()),
		OvercomeRate:      round1(s.Overcome.Percent()),
	}
	score := model.Score(metrics)

	trend := "stable"
	if score > 70 {
		trend = "improving"
	}

	return domain.EfficiencyAnalysis{
		Score:              score,
		AIAcceptanceRate:   metrics.AIAcceptanceRate,
		HighFrequencyRate:  metrics.HighFrequencyRate,
		OvercomeRate:       metrics.OvercomeRate,
		FocusPeriods:       model.FocusWindows(),
		DistractionPeriods: model.DistractionWindows(),
		Trend:              trend,
	}
}

// BuildMoodTrend classifies the period's mood balance. Positive moods must
// outnumber negative ones by more than 1.5x for a positive trend, and vice
// versa; anything else is stable.
func BuildMoodTrend(s *domain.PeriodSummary) domain.MoodTrend {
	distribution := make(map[domain.Mood]int, len(s.MoodCounts))
	positive, negative := 0, 0
	for mood, count := range s.MoodCounts {
		distribution[mood] = count
		if mood.Positive() {
			positive += count
		}
		if mood.Negative() {
			negative += count
		}
	}

	trend := "stable"
	switch {
	case float64(positive) > 1.5*float64(negative) && positive > 0:
		trend = "positive"
	case float64(negative) > 1.5*float64(positive) && negative > 0:
		trend = "negative"
	}

	dominant := domain.DominantMood(s.MoodCounts)
	suggestions := []string{}
	if dominant != nil {
		suggestions = append(suggestions, moodSuggestions[*dominant]...)
	}

	return domain.MoodTrend{
		Trend:        trend,
		Distribution: distribution,
		DominantMood: dominant,
		Suggestions:  suggestions,
	}
}

// BuildComparison computes deltas between two independently resolved periods.
// The hours delta is signed, so swapping the periods flips its sign with the
// same magnitude.
func BuildComparison(current, previous *domain.PeriodSummary) domain.ComparisonAnalysis {
	cmp := domain.ComparisonAnalysis{
		CurrentPeriod:  current.Period,
		PreviousPeriod: previous.Period,
		HoursDelta:     current.TotalHours - previous.TotalHours,
		Current:        BuildOverview(current),
		Previous:       BuildOverview(previous),
	}
	cmp.AIAcceptanceDelta = cmp.Current.AIAcceptanceRate - cmp.Previous.AIAcceptanceRate

	switch {
	case previous.TotalHours == 0 && current.TotalHours > 0:
		cmp.HoursChangePercent = 100
	case previous.TotalHours == 0:
		cmp.HoursChangePercent = 0
	default:
		cmp.HoursChangePercent = round1(cmp.HoursDelta / previous.TotalHours * 100)
	}

	cmp.Insights = comparisonInsights(current, previous, cmp)
	return cmp
}

func comparisonInsights(current, previous *domain.PeriodSummary, cmp domain.ComparisonAnalysis) []string {
	var insights []string

	if math.Abs(cmp.HoursDelta) >= 1 {
		direction := "increased"
		if cmp.HoursDelta < 0 {
			direction = "decreased"
		}
		insights = append(insights, fmt.Sprintf("total completed time %s by %.1f hours", direction, math.Abs(cmp.HoursDelta)))
	}

	for _, category := range []domain.TaskType{domain.TaskTypeStudy, domain.TaskTypeWork, domain.TaskTypeLife} {
		delta := current.CategoryHours[string(category)] - previous.CategoryHours[string(category)]
		if math.Abs(delta) < 2 {
			continue
		}
		direction := "increased"
		if delta < 0 {
			direction = "decreased"
		}
		insights = append(insights, fmt.Sprintf("%s time %s by %.1f hours", category, direction, math.Abs(delta)))
	}

	if delta := cmp.AIAcceptanceDelta; delta >= 5 {
		insights = append(insights, fmt.Sprintf("AI recommendation acceptance up %d points", delta))
	} else if delta <= -5 {
		insights = append(insights, fmt.Sprintf("AI recommendation acceptance down %d points", -delta))
	}

	if len(insights) == 0 {
		insights = append(insights, "performance is stable compared to the previous period")
	}
	return insights
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
