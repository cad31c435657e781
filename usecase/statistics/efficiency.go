package statistics

// Metrics are the normalized inputs an efficiency model scores, all on a
// 0-100 scale.
type Metrics struct {
	AIAcceptanceRate  int
	HighFrequencyRate float64
	OvercomeRate      float64
}

// EfficiencyModel scores a period and names focus/distraction windows. The
// default is rule-based; a learned model can replace it without touching the
// facade.
type EfficiencyModel interface {
	Score(m Metrics) float64
	FocusWindows() []string
	DistractionWindows() []string
}

// RuleBasedModel averages the three metrics and reports fixed time-of-day
// windows. It is a heuristic placeholder, not a forecast.
type RuleBasedModel struct{}

func (RuleBasedModel) Score(m Metrics) float64 {
	return round1((float64(m.AIAcceptanceRate) + m.HighFrequencyRate + m.OvercomeRate) / 3)
}

func (RuleBasedModel) FocusWindows() []string {
	return []string{"09:00-11:00", "15:00-17:00"}
}

func (RuleBasedModel) DistractionWindows() []string {
	return []string{"13:00-14:00", "21:00-23:00"}
}
