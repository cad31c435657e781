package repository

import (
	"context"

	"github.com/aitimer/backend/domain"
)

// RollupRepository caches precomputed period summaries keyed by
// (user, "YYYY-WW"). It is memoization, never a second source of truth: every
// value it holds must be reproducible by re-running the aggregator, and Put
// is idempotent so concurrent population races are harmless.
type RollupRepository interface {
	Get(ctx context.Context, userID, periodKey string) (*domain.PeriodSummary, bool, error)
	Put(ctx context.Context, summary *domain.PeriodSummary) error
	Invalidate(ctx context.Context, userID, periodKey string) error
}
