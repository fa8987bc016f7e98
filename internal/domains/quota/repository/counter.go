package repository

import (
	"context"
	"fmt"

	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/pkg/cache"
	"pvadb-backend/pkg/logger"
)

// counterKey is the single durable record holding the whole identity→count
// map as one JSON blob. Stored without TTL; staleness is a known trade-off.
const counterKey = "quota:pending_submissions"

type kvCounterStore struct {
	store cache.Cache
}

// NewKVCounterStore creates the CounterStore on top of the key-value layer.
//
// The whole map is read-modified-written on every increment. This is NOT
// atomic across concurrent writers: two rapid submissions can both read the
// same count and last-write-wins on the way back. Accepted: the quota is an
// abuse deterrent, not a security boundary. Do not add locks here.
func NewKVCounterStore(store cache.Cache) quota.CounterStore {
	return &kvCounterStore{
		store: store,
	}
}

func (s *kvCounterStore) GetPendingCount(ctx context.Context, userID string) int {
	counts := s.readCounts(ctx)
	return counts[userID]
}

func (s *kvCounterStore) IncrementPendingCount(ctx context.Context, userID string, delta int) error {
	if delta < 1 {
		return fmt.Errorf("increment delta must be >= 1, got %d", delta)
	}

	counts := s.readCounts(ctx)
	counts[userID] += delta

	// ttl 0: the blob never expires on its own
	if err := s.store.Set(ctx, counterKey, counts, 0); err != nil {
		return fmt.Errorf("failed to persist submission counts: %w", err)
	}

	return nil
}

// readCounts loads the blob, treating a miss or corrupt payload as an empty
// map. Fail open on read: a broken counter must make the quota more
// generous for the caller's own tally, never crash the submission path.
func (s *kvCounterStore) readCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)

	found, err := s.store.Get(ctx, counterKey, &counts)
	if err != nil {
		logger.Error("submission counter blob unreadable, treating as empty", err)
		return make(map[string]int)
	}
	if !found {
		return counts
	}

	// Guard the count >= 0 invariant against hand-edited or corrupted data
	for id, n := range counts {
		if n < 0 {
			counts[id] = 0
		}
	}

	return counts
}
