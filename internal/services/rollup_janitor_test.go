package services

import (
	"errors"
	"testing"
	"time"
)

type fakeCleaner struct {
	cutoffs []time.Time
	removed int
	err     error
}

func (f *fakeCleaner) CleanupOlder(cutoff time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.removed, nil
}

func (f *fakeCleaner) Size() (int, error) { return 0, nil }

func TestSweepUsesRetentionCutoff(t *testing.T) {
	cleaner := &fakeCleaner{removed: 3}
	j := NewRollupJanitor(cleaner, nil, JanitorConfig{
		Interval:  time.Minute,
		Retention: 48 * time.Hour,
	})

	before := time.Now().Add(-48 * time.Hour)
	j.sweep()
	after := time.Now().Add(-48 * time.Hour)

	if len(cleaner.cutoffs) != 1 {
		t.Fatalf("cleanup calls = %d, want 1", len(cleaner.cutoffs))
	}
	cutoff := cleaner.cutoffs[0]
	if cutoff.Before(before) || cutoff.After(after) {
		t.Fatalf("cutoff %v not within retention window [%v, %v]", cutoff, before, after)
	}
}

func TestSweepSurvivesStoreErrors(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db closed")}
	j := NewRollupJanitor(cleaner, nil, JanitorConfig{Interval: time.Minute})

	// Must not panic; the next tick retries.
	j.sweep()
}

func TestJanitorDefaultsApplied(t *testing.T) {
	j := NewRollupJanitor(&fakeCleaner{}, nil, JanitorConfig{})

	if j.cfg.Interval != time.Hour {
		t.Fatalf("interval = %v, want 1h default", j.cfg.Interval)
	}
	if j.cfg.Retention != 7*24*time.Hour {
		t.Fatalf("retention = %v, want 168h default", j.cfg.Retention)
	}
}
