// Package bolt provides an embedded rollup cache for single-node deployments
// where Redis is not available. Entries carry no TTL of their own; the rollup
// janitor sweeps stale ones on an interval.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	boltdb "go.etcd.io/bbolt"

	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/repository"
)

const bucketName = "rollups"

// RollupStore wraps BoltDB to persist period summaries between requests.
type RollupStore struct {
	db     *boltdb.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the rollup bucket exists.
func Open(path string) (*RollupStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltdb.Open(path, 0o600, &boltdb.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &RollupStore{
		db:     db,
		bucket: []byte(bucketName),
	}, nil
}

func (s *RollupStore) Get(ctx context.Context, userID, periodKey string) (*domain.PeriodSummary, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, boltdb.ErrDatabaseNotOpen
	}

	var summary *domain.PeriodSummary
	err := s.db.View(func(tx *boltdb.Tx) error {
		raw := tx.Bucket(s.bucket).Get(buildKey(userID, periodKey))
		if raw == nil {
			return nil
		}
		var decoded domain.PeriodSummary
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// Corrupt entries read as misses and get rebuilt.
			return nil
		}
		summary = &decoded
		return nil
	})
	if err != nil {
		return nil, false, domain.WrapError(domain.ErrCodeUnavailable, "rollup read failed", err)
	}
	return summary, summary != nil, nil
}

func (s *RollupStore) Put(ctx context.Context, summary *domain.PeriodSummary) error {
	if s == nil || s.db == nil {
		return boltdb.ErrDatabaseNotOpen
	}
	if summary == nil || summary.UserID == "" || summary.Period == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(s.bucket).Put(buildKey(summary.UserID, summary.Period), payload)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "rollup write failed", err)
	}
	return nil
}

func (s *RollupStore) Invalidate(ctx context.Context, userID, periodKey string) error {
	if s == nil || s.db == nil {
		return boltdb.ErrDatabaseNotOpen
	}
	err := s.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(s.bucket).Delete(buildKey(userID, periodKey))
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "rollup invalidate failed", err)
	}
	return nil
}

// CleanupOlder removes entries computed before the cutoff and returns how
// many were deleted.
func (s *RollupStore) CleanupOlder(cutoff time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, boltdb.ErrDatabaseNotOpen
	}
	removed := 0
	err := s.db.Update(func(tx *boltdb.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var summary domain.PeriodSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
				continue
			}
			if summary.ComputedAt.Before(cutoff) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Size returns the number of cached rollups.
func (s *RollupStore) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, boltdb.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *boltdb.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *RollupStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildKey(userID, periodKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userID, periodKey))
}

var _ repository.RollupRepository = (*RollupStore)(nil)
