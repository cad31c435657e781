package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RollupSizer reports how many rollups the embedded cache holds. Nil when the
// deployment uses Redis or no cache at all.
type RollupSizer interface {
	Size() (int, error)
}

// Monitor periodically probes the service's dependencies. Redis and the
// embedded rollup store are optional; only Postgres is required for health.
type Monitor struct {
	pg      *pgxpool.Pool
	redis   *redislib.Client
	rollups RollupSizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(pg *pgxpool.Pool, redis *redislib.Client, rollups RollupSizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		rollups:  rollups,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsHealthy reports whether every configured dependency responds. Optional
// dependencies that are not wired never degrade health.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.status.PostgreSQL {
		return false
	}
	if m.redis != nil && !m.status.Redis {
		return false
	}
	return true
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	rollupOK, rollupCount := m.checkRollups()
	status := Status{
		PostgreSQL:  m.checkPostgres(),
		Redis:       m.checkRedis(),
		RollupCache: rollupOK,
		RollupCount: rollupCount,
		LastCheck:   time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkPostgres() bool {
	if m.pg == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.pg.Ping(ctx) == nil
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) checkRollups() (bool, int) {
	if m.rollups == nil {
		return false, 0
	}
	size, err := m.rollups.Size()
	if err != nil {
		m.logger.Warn("rollup size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
