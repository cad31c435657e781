// Package period resolves caller-supplied period keys into concrete date
// boundaries using ISO-8601 week numbering. Weeks start Monday; week 1 is the
// week containing the year's first Thursday, so a calendar date near a year
// boundary always resolves into exactly one (year, week) pair.
package period

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aitimer/backend/domain"
)

// Period is an inclusive [Start, End] date range. Key is the "YYYY-WW" cache
// token for ISO-week periods and empty for rolling windows, which are never
// cached.
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
}

// Key formats an ISO (year, week) pair as the canonical "YYYY-WW" token. The
// token doubles as a rollup cache key, so the format must stay bit-for-bit
// stable.
func Key(year, week int) string {
	return fmt.Sprintf("%04d-%02d", year, week)
}

// Resolve converts an optional year-week token into a concrete period,
// defaulting to the ISO week containing now when the token is empty.
func Resolve(yearWeek string, now time.Time, loc *time.Location) (Period, error) {
	if yearWeek == "" {
		return CurrentWeek(now, loc), nil
	}
	return FromYearWeek(yearWeek, loc)
}

// CurrentWeek returns the ISO week containing now in the given location.
func CurrentWeek(now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	year, week := now.In(loc).ISOWeek()
	return fromParts(year, week, loc)
}

// FromYearWeek parses a strict "YYYY-WW" token. The week component must be
// two digits in 01-53, and week 53 is only accepted in years that actually
// have one.
func FromYearWeek(yearWeek string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	if len(yearWeek) != 7 || yearWeek[4] != '-' {
		return Period{}, domain.WrapError(domain.ErrCodeInvalid, "invalid period",
			fmt.Errorf("year-week %q must match YYYY-WW", yearWeek))
	}
	for i, c := range yearWeek {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return Period{}, domain.WrapError(domain.ErrCodeInvalid, "invalid period",
				fmt.Errorf("year-week %q must match YYYY-WW", yearWeek))
		}
	}
	year, _ := strconv.Atoi(yearWeek[:4])
	week, _ := strconv.Atoi(yearWeek[5:])
	if week < 1 || week > 53 {
		return Period{}, domain.WrapError(domain.ErrCodeInvalid, "invalid period",
			fmt.Errorf("week %02d out of range 01-53", week))
	}
	p := fromParts(year, week, loc)
	if gotYear, gotWeek := p.Start.ISOWeek(); gotYear != year || gotWeek != week {
		return Period{}, domain.WrapError(domain.ErrCodeInvalid, "invalid period",
			fmt.Errorf("year %04d has no week %02d", year, week))
	}
	return p, nil
}

// LastNDays returns the rolling window of the n days ending today.
func LastNDays(n int, now time.Time, loc *time.Location) (Period, error) {
	if n <= 0 {
		return Period{}, domain.WrapError(domain.ErrCodeInvalid, "invalid period",
			fmt.Errorf("days must be positive, got %d", n))
	}
	if loc == nil {
		loc = time.UTC
	}
	end := truncateToDay(now.In(loc))
	return Period{
		Start: end.AddDate(0, 0, -(n - 1)),
		End:   end,
	}, nil
}

// Previous returns the period immediately before p with the same length.
// For ISO-week periods the result carries the prior week's key.
func (p Period) Previous() Period {
	days := p.Len()
	prev := Period{
		Start: p.Start.AddDate(0, 0, -days),
		End:   p.End.AddDate(0, 0, -days),
	}
	if p.Key != "" {
		year, week := prev.Start.ISOWeek()
		prev.Key = Key(year, week)
	}
	return prev
}

// Len returns the number of calendar days covered by the period. Day math is
// done on UTC dates so DST transitions inside the range cannot skew the count.
func (p Period) Len() int {
	start := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// Dates enumerates every calendar date in the period, inclusive. Days with
// zero activity still appear in daily breakdowns.
func (p Period) Dates() []time.Time {
	days := p.Len()
	if days <= 0 {
		return nil
	}
	out := make([]time.Time, 0, days)
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

func fromParts(year, week int, loc *time.Location) Period {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	mondayOffset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -mondayOffset)
	start := week1Monday.AddDate(0, 0, (week-1)*7)
	return Period{
		Key:   Key(year, week),
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
