package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RollupCleaner is the subset of the embedded rollup store the janitor needs.
type RollupCleaner interface {
	CleanupOlder(cutoff time.Time) (int, error)
	Size() (int, error)
}

// JanitorConfig controls how frequently stale rollups are swept.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// RollupJanitor expires stale entries from the embedded rollup cache. Bolt
// entries carry no TTL of their own, so without the sweep the cache file
// grows with every user-week ever requested. Cache correctness does not
// depend on the janitor; it only reclaims space.
type RollupJanitor struct {
	store  RollupCleaner
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
}

func NewRollupJanitor(store RollupCleaner, logger *zap.Logger, cfg JanitorConfig) *RollupJanitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &RollupJanitor{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		logger.Error("rollup sweep not scheduled",
			zap.String("schedule", schedule),
			zap.Error(err))
	}

	return j
}

// Start launches the cron scheduler.
func (j *RollupJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("rollup janitor started",
		zap.Duration("interval", j.cfg.Interval),
		zap.Duration("retention", j.cfg.Retention))
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep.
func (j *RollupJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("rollup janitor stopped")
}

func (j *RollupJanitor) sweep() {
	cutoff := time.Now().Add(-j.cfg.Retention)
	removed, err := j.store.CleanupOlder(cutoff)
	if err != nil {
		j.logger.Error("rollup cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		size, _ := j.store.Size()
		j.logger.Info("stale rollups removed",
			zap.Int("removed", removed),
			zap.Int("remaining", size))
	}
}
