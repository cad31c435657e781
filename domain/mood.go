package domain

import "time"

// Mood is a closed tag vocabulary for per-slot mood logging.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodFocused  Mood = "focused"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodExcited  Mood = "excited"
)

// MoodOrder fixes the precedence used to break dominant-mood ties. New moods
// must be appended, never inserted, so existing tie-breaks stay stable.
var MoodOrder = []Mood{MoodHappy, MoodFocused, MoodTired, MoodStressed, MoodExcited}

func (m Mood) Valid() bool {
	return m.rank() >= 0
}

// Positive reports whether the mood counts toward the positive side of the
// trend classification.
func (m Mood) Positive() bool {
	switch m {
	case MoodHappy, MoodFocused, MoodExcited:
		return true
	}
	return false
}

func (m Mood) Negative() bool {
	switch m {
	case MoodTired, MoodStressed:
		return true
	}
	return false
}

func (m Mood) rank() int {
	for i, candidate := range MoodOrder {
		if candidate == m {
			return i
		}
	}
	return -1
}

// DominantMood returns the most frequent mood in counts, or nil when counts
// is empty. Ties resolve to the mood that appears first in MoodOrder.
func DominantMood(counts map[Mood]int) *Mood {
	var best *Mood
	bestCount := 0
	for _, mood := range MoodOrder {
		if n := counts[mood]; n > bestCount {
			m := mood
			best = &m
			bestCount = n
		}
	}
	return best
}

// MoodRecord is the single mood logged against a time slot. Logging twice for
// the same slot overwrites the previous record.
type MoodRecord struct {
	UserID     string    `json:"user_id"`
	SlotID     string    `json:"slot_id"`
	Mood       Mood      `json:"mood"`
	RecordedAt time.Time `json:"recorded_at"`
}
