package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
)

// RawDataRepository keeps the latest payload per feed in process. It backs
// the stale-odds fallback when no database is configured.
type RawDataRepository struct {
	mu     sync.RWMutex
	byFeed map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{byFeed: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.byFeed[item.Source+"|"+item.FeedKey] = item
	}
	return nil
}

func (r *RawDataRepository) LatestBySport(_ context.Context, sportKey string) (rawdata.Payload, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest rawdata.Payload
		found  bool
	)
	for _, item := range r.byFeed {
		if item.SportKey != sportKey {
			continue
		}
		if !found || item.FetchedAt.After(latest.FetchedAt) {
			latest = item
			found = true
		}
	}
	return latest, found, nil
}
