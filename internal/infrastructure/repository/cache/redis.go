package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
	"github.com/riskibarqy/oddsboard/internal/platform/resilience"
)

const (
	backendRedis      = "redis"
	defaultKeyPrefix  = "oddsboard:"
	defaultRedisTTL   = time.Minute
	invalidateScanCnt = 200
)

// RedisBoardCache shares boards between replicas. Redis failures degrade to
// loading straight from the source; they never fail a request on their own.
type RedisBoardCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
	flight    resilience.SingleFlight
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

func NewRedisBoardCache(client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics, logger *logging.Logger) *RedisBoardCache {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisBoardCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: defaultKeyPrefix,
		metrics:   m,
		logger:    logger,
	}
}

func (c *RedisBoardCache) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]match.Board, error)) ([]match.Board, error) {
	redisKey := c.keyPrefix + key

	if items, ok := c.get(ctx, redisKey); ok {
		c.metrics.RecordCacheLookup(backendRedis, true)
		return items, nil
	}
	c.metrics.RecordCacheLookup(backendRedis, false)

	// The shared load outlives any single waiter's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	out, err, _ := c.flight.Do(ctx, redisKey, func() (any, error) {
		loaded, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		c.set(loadCtx, redisKey, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := out.([]match.Board)
	if !ok {
		return nil, fmt.Errorf("redis board cache: unexpected value type %T", out)
	}
	return append([]match.Board(nil), items...), nil
}

// Invalidate scans for keys under prefix and deletes them in batches.
func (c *RedisBoardCache) Invalidate(ctx context.Context, prefix string) error {
	pattern := escapeGlob(c.keyPrefix+prefix) + "*"
	iter := c.client.Scan(ctx, 0, pattern, invalidateScanCnt).Iterator()

	batch := make([]string, 0, invalidateScanCnt)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("delete cached boards: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= invalidateScanCnt {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached boards prefix=%s: %w", prefix, err)
	}
	return flush()
}

func (c *RedisBoardCache) get(ctx context.Context, key string) ([]match.Board, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "redis board cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var items []match.Board
	if err := sonic.Unmarshal(raw, &items); err != nil {
		c.logger.WarnContext(ctx, "redis board cache holds undecodable value", "key", key, "error", err)
		return nil, false
	}
	return items, true
}

func (c *RedisBoardCache) set(ctx context.Context, key string, items []match.Board) {
	raw, err := sonic.Marshal(items)
	if err != nil {
		c.logger.WarnContext(ctx, "encode boards for redis failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis board cache write failed", "key", key, "error", err)
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the characters SCAN MATCH treats as wildcards.
func escapeGlob(value string) string {
	return globEscaper.Replace(value)
}
