package bolt

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aitimer/backend/domain"
)

func openTestStore(t *testing.T) *RollupStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rollups.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSummary(userID, periodKey string, computedAt time.Time) *domain.PeriodSummary {
	return &domain.PeriodSummary{
		UserID:         userID,
		Period:         periodKey,
		StartDate:      "2025-06-09",
		EndDate:        "2025-06-15",
		TotalHours:     5,
		CompletedSlots: 5,
		TotalSlots:     8,
		CompletionRate: 62.5,
		TaskHours:      map[string]float64{"Reading": 3, "Gym": 2},
		CategoryHours:  map[string]float64{"study": 3, "life": 2},
		Days:           []domain.DaySummary{{Date: "2025-06-09", CompletedSlots: 5, TotalSlots: 8}},
		HighFrequency:  domain.Ratio{Completed: 2, Total: 3},
		MoodCounts:     map[domain.Mood]int{domain.MoodHappy: 2},
		ComputedAt:     computedAt,
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleSummary("user-1", "2025-24", time.Now().UTC().Truncate(time.Second))
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "user-1", "2025-24")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("stored summary not found")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestGetMissIsNotAnError(t *testing.T) {
	store := openTestStore(t)

	got, ok, err := store.Get(context.Background(), "nobody", "2025-01")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stale := sampleSummary("user-1", "2025-24", time.Now().UTC())
	if err := store.Put(ctx, stale); err != nil {
		t.Fatal(err)
	}
	fresh := sampleSummary("user-1", "2025-24", time.Now().UTC())
	fresh.CompletedSlots = 7
	fresh.TotalHours = 7
	if err := store.Put(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Get(ctx, "user-1", "2025-24")
	if err != nil {
		t.Fatal(err)
	}
	if got.CompletedSlots != 7 {
		t.Fatalf("completed = %d, want overwritten value 7", got.CompletedSlots)
	}
	if n, _ := store.Size(); n != 1 {
		t.Fatalf("size = %d, rewrite must not add a key", n)
	}
}

func TestPutRejectsUnkeyedSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, nil); err == nil {
		t.Fatal("nil summary must be rejected")
	}
	if err := store.Put(ctx, &domain.PeriodSummary{UserID: "user-1"}); err == nil {
		t.Fatal("summary without a period key must be rejected")
	}
}

func TestInvalidate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, sampleSummary("user-1", "2025-24", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.Invalidate(ctx, "user-1", "2025-24"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "user-1", "2025-24"); ok {
		t.Fatal("entry survived invalidation")
	}

	// Deleting an absent key is a no-op.
	if err := store.Invalidate(ctx, "user-1", "2025-24"); err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
}

func TestCleanupOlder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.Put(ctx, sampleSummary("user-1", "2025-22", now.Add(-72*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, sampleSummary("user-1", "2025-23", now.Add(-48*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, sampleSummary("user-2", "2025-24", now)); err != nil {
		t.Fatal(err)
	}

	removed, err := store.CleanupOlder(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, ok, _ := store.Get(ctx, "user-1", "2025-22"); ok {
		t.Fatal("stale entry survived cleanup")
	}
	if _, ok, _ := store.Get(ctx, "user-2", "2025-24"); !ok {
		t.Fatal("fresh entry removed by cleanup")
	}
	if n, _ := store.Size(); n != 1 {
		t.Fatalf("size = %d after cleanup, want 1", n)
	}
}

func TestSizeCountsEntries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if n, err := store.Size(); err != nil || n != 0 {
		t.Fatalf("empty size = %d (%v)", n, err)
	}
	for _, key := range []string{"2025-22", "2025-23", "2025-24"} {
		if err := store.Put(ctx, sampleSummary("user-1", key, time.Now())); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := store.Size(); err != nil || n != 3 {
		t.Fatalf("size = %d (%v), want 3", n, err)
	}
}
