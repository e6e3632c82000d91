package cache

import (
	"context"

	"github.com/riskibarqy/oddsboard/internal/domain/match"
	basecache "github.com/riskibarqy/oddsboard/internal/platform/cache"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

const backendMemory = "memory"

// MemoryBoardCache keeps boards in process.
type MemoryBoardCache struct {
	store   *basecache.Store[[]match.Board]
	metrics *metrics.Metrics
}

func NewMemoryBoardCache(store *basecache.Store[[]match.Board], m *metrics.Metrics) *MemoryBoardCache {
	return &MemoryBoardCache{store: store, metrics: m}
}

func (c *MemoryBoardCache) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]match.Board, error)) ([]match.Board, error) {
	if items, ok := c.store.Get(ctx, key); ok {
		c.metrics.RecordCacheLookup(backendMemory, true)
		return cloneBoards(items), nil
	}
	c.metrics.RecordCacheLookup(backendMemory, false)

	items, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) ([]match.Board, error) {
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return cloneBoards(loaded), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneBoards(items), nil
}

func (c *MemoryBoardCache) Invalidate(ctx context.Context, prefix string) error {
	c.store.DeletePrefix(ctx, prefix)
	return nil
}

// cloneBoards copies the slice so callers cannot reorder cached entries.
// Boards are never mutated after normalization.
func cloneBoards(items []match.Board) []match.Board {
	return append([]match.Board(nil), items...)
}
