package statistics

import (
	"strings"
	"testing"

	"github.com/aitimer/backend/domain"
)

func summaryWith(mutate func(*domain.PeriodSummary)) *domain.PeriodSummary {
	s := &domain.PeriodSummary{
		UserID:        testUser,
		Period:        "2025-24",
		StartDate:     "2025-06-09",
		EndDate:       "2025-06-15",
		TaskHours:     map[string]float64{},
		CategoryHours: map[string]float64{},
		MoodCounts:    map[domain.Mood]int{},
	}
	if mutate != nil {
		mutate(s)
	}
	return s
}

// ============================================================
// Chart derivation
// ============================================================

func TestChartCategoryPercentages(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.TotalHours = 5
		s.CompletedSlots = 5
		s.CategoryHours = map[string]float64{"study": 4, "life": 1}
	})

	chart := BuildChart(s)
	if len(chart.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(chart.Categories))
	}
	if chart.Categories[0].Name != "study" || chart.Categories[0].Percentage != 80.0 {
		t.Fatalf("first category = %+v, want study at 80.0", chart.Categories[0])
	}
	if chart.Categories[1].Name != "life" || chart.Categories[1].Percentage != 20.0 {
		t.Fatalf("second category = %+v, want life at 20.0", chart.Categories[1])
	}
}

func TestChartZeroTotalYieldsZeroPercentages(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.CategoryHours = map[string]float64{"study": 0}
	})
	chart := BuildChart(s)
	if chart.Categories[0].Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 for empty period", chart.Categories[0].Percentage)
	}
}

func TestChartColorsDeterministic(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.TotalHours = 10
		s.CategoryHours = map[string]float64{"study": 5, "work": 3, "life": 2}
	})

	first := BuildChart(s)
	second := BuildChart(s)
	for i := range first.Categories {
		if first.Categories[i].Color != second.Categories[i].Color {
			t.Fatalf("color assignment changed between calls at index %d", i)
		}
		if first.Categories[i].Color == "" {
			t.Fatalf("category %q has no color", first.Categories[i].Name)
		}
	}
}

func TestChartPaletteCycles(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.TotalHours = 100
		for i := 0; i < len(categoryPalette)+2; i++ {
			s.CategoryHours[strings.Repeat("c", i+1)] = float64(100 - i)
		}
	})

	chart := BuildChart(s)
	if got := chart.Categories[len(categoryPalette)].Color; got != categoryPalette[0] {
		t.Fatalf("palette did not cycle: got %q, want %q", got, categoryPalette[0])
	}
}

func TestChartDailyDominantMood(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.Days = []domain.DaySummary{
			{Date: "2025-06-09", CompletedSlots: 2, TotalSlots: 4,
				MoodCounts: map[domain.Mood]int{domain.MoodHappy: 3, domain.MoodTired: 1}},
			{Date: "2025-06-10"},
		}
	})

	chart := BuildChart(s)
	if chart.Daily[0].CompletionRate != 50.0 {
		t.Fatalf("completion rate = %v, want 50.0", chart.Daily[0].CompletionRate)
	}
	if chart.Daily[0].DominantMood == nil || *chart.Daily[0].DominantMood != domain.MoodHappy {
		t.Fatalf("dominant mood = %v, want happy", chart.Daily[0].DominantMood)
	}
	if chart.Daily[1].DominantMood != nil {
		t.Fatal("day without moods must have nil dominant mood")
	}
	if chart.Daily[1].CompletionRate != 0 {
		t.Fatalf("empty day rate = %v, want 0", chart.Daily[1].CompletionRate)
	}
}

// ============================================================
// Efficiency
// ============================================================

func TestEfficiencyScoreAveragesMetrics(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.AIRecommended = 10
		s.AICompleted = 9 // 90
		s.HighFrequency = domain.Ratio{Completed: 8, Total: 10} // 80
		s.Overcome = domain.Ratio{Completed: 7, Total: 10}      // 70
	})

	analysis := BuildEfficiency(s, RuleBasedModel{})
	if analysis.Score != 80.0 {
		t.Fatalf("score = %v, want 80.0", analysis.Score)
	}
	if analysis.Trend != "improving" {
		t.Fatalf("trend = %q, want improving above 70", analysis.Trend)
	}
	if len(analysis.FocusPeriods) == 0 || len(analysis.DistractionPeriods) == 0 {
		t.Fatal("focus/distraction windows must be populated")
	}
}

func TestEfficiencyStableAtOrBelowThreshold(t *testing.T) {
	s := summaryWith(nil)
	analysis := BuildEfficiency(s, RuleBasedModel{})
	if analysis.Score != 0 {
		t.Fatalf("score = %v, want 0 for empty period", analysis.Score)
	}
	if analysis.Trend != "stable" {
		t.Fatalf("trend = %q, want stable", analysis.Trend)
	}
}

type fixedModel struct{ score float64 }

func (m fixedModel) Score(Metrics) float64        { return m.score }
func (m fixedModel) FocusWindows() []string       { return []string{"06:00-08:00"} }
func (m fixedModel) DistractionWindows() []string { return nil }

func TestEfficiencyModelIsSwappable(t *testing.T) {
	analysis := BuildEfficiency(summaryWith(nil), fixedModel{score: 95})
	if analysis.Score != 95 {
		t.Fatalf("score = %v, want 95 from injected model", analysis.Score)
	}
	if analysis.Trend != "improving" {
		t.Fatalf("trend = %q, want improving", analysis.Trend)
	}
}

// ============================================================
// Mood trend
// ============================================================

func TestMoodTrendClassification(t *testing.T) {
	cases := []struct {
		name   string
		counts map[domain.Mood]int
		want   string
	}{
		{"clearly positive", map[domain.Mood]int{domain.MoodHappy: 4, domain.MoodTired: 2}, "positive"},
		{"clearly negative", map[domain.Mood]int{domain.MoodStressed: 4, domain.MoodHappy: 2}, "negative"},
		{"balanced", map[domain.Mood]int{domain.MoodHappy: 3, domain.MoodTired: 2}, "stable"},
		{"empty", map[domain.Mood]int{}, "stable"},
		{"only positive", map[domain.Mood]int{domain.MoodFocused: 1}, "positive"},
	}

	for _, tc := range cases {
		s := summaryWith(func(s *domain.PeriodSummary) { s.MoodCounts = tc.counts })
		trend := BuildMoodTrend(s)
		if trend.Trend != tc.want {
			t.Errorf("%s: trend = %q, want %q", tc.name, trend.Trend, tc.want)
		}
	}
}

func TestMoodTrendSuggestions(t *testing.T) {
	s := summaryWith(func(s *domain.PeriodSummary) {
		s.MoodCounts = map[domain.Mood]int{domain.MoodTired: 5}
	})
	trend := BuildMoodTrend(s)
	if trend.DominantMood == nil || *trend.DominantMood != domain.MoodTired {
		t.Fatalf("dominant = %v, want tired", trend.DominantMood)
	}
	if len(trend.Suggestions) == 0 {
		t.Fatal("dominant mood must attach suggestions")
	}

	empty := BuildMoodTrend(summaryWith(nil))
	if empty.DominantMood != nil {
		t.Fatal("no records must yield nil dominant mood")
	}
	if empty.Suggestions == nil {
		t.Fatal("suggestions must be an empty slice, not nil")
	}
}

// ============================================================
// Comparison
// ============================================================

func TestComparisonDeltas(t *testing.T) {
	current := summaryWith(func(s *domain.PeriodSummary) {
		s.TotalHours = 10
		s.AIRecommended = 10
		s.AICompleted = 8
		s.CategoryHours = map[string]float64{"study": 8, "life": 2}
	})
	previous := summaryWith(func(s *domain.PeriodSummary) {
		s.Period = "2025-23"
		s.TotalHours = 5
		s.AIRecommended = 10
		s.AICompleted = 5
		s.CategoryHours = map[string]float64{"study": 4, "life": 1}
	})

	cmp := BuildComparison(current, previous)
	if cmp.HoursDelta != 5 {
		t.Fatalf("hours delta = %v, want 5", cmp.HoursDelta)
	}
	if cmp.HoursChangePercent != 100.0 {
		t.Fatalf("change = %v, want 100.0", cmp.HoursChangePercent)
	}
	if cmp.AIAcceptanceDelta != 30 {
		t.Fatalf("acceptance delta = %v, want 30", cmp.AIAcceptanceDelta)
	}
	if len(cmp.Insights) == 0 {
		t.Fatal("meaningful deltas must produce insights")
	}
}

func TestComparisonSymmetry(t *testing.T) {
	a := summaryWith(func(s *domain.PeriodSummary) { s.TotalHours = 12 })
	b := summaryWith(func(s *domain.PeriodSummary) { s.Period = "2025-23"; s.TotalHours = 7 })

	forward := BuildComparison(a, b)
	backward := BuildComparison(b, a)
	if forward.HoursDelta != -backward.HoursDelta {
		t.Fatalf("delta not sign-symmetric: %v vs %v", forward.HoursDelta, backward.HoursDelta)
	}
}

func TestComparisonZeroPrevious(t *testing.T) {
	current := summaryWith(func(s *domain.PeriodSummary) { s.TotalHours = 3 })
	previous := summaryWith(func(s *domain.PeriodSummary) { s.Period = "2025-23" })

	cmp := BuildComparison(current, previous)
	if cmp.HoursChangePercent != 100 {
		t.Fatalf("change = %v, want 100 when previous is empty", cmp.HoursChangePercent)
	}

	bothEmpty := BuildComparison(summaryWith(nil), previous)
	if bothEmpty.HoursChangePercent != 0 {
		t.Fatalf("change = %v, want 0 when both empty", bothEmpty.HoursChangePercent)
	}
}

func TestComparisonStableFallback(t *testing.T) {
	cmp := BuildComparison(summaryWith(nil), summaryWith(func(s *domain.PeriodSummary) { s.Period = "2025-23" }))
	if len(cmp.Insights) != 1 {
		t.Fatalf("insights = %v, want single stable message", cmp.Insights)
	}
	if !strings.Contains(cmp.Insights[0], "stable") {
		t.Fatalf("fallback insight = %q", cmp.Insights[0])
	}
}
