package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusPartial = "partial"
	refreshStatusFailed  = "failed"
	refreshStatusIdle    = "idle"
)

type RefreshResult struct {
	FeedCount    int
	SuccessCount int
	FailedCount  int
	BoardCount   int
	Duration     time.Duration
}

func (r RefreshResult) status() string {
	switch {
	case r.FeedCount == 0:
		return refreshStatusIdle
	case r.FailedCount == 0:
		return refreshStatusSuccess
	case r.SuccessCount == 0:
		return refreshStatusFailed
	default:
		return refreshStatusPartial
	}
}

// RefreshService keeps the board cache warm for every configured feed.
type RefreshService struct {
	markets *MarketService
	metrics *metrics.Metrics
	logger  *logging.Logger
}

func NewRefreshService(markets *MarketService, m *metrics.Metrics, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		markets: markets,
		metrics: m,
		logger:  logger,
	}
}

// RunOnce invalidates and reloads each configured feed in turn. A failing
// feed is logged and does not stop the others.
func (s *RefreshService) RunOnce(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RunOnce")
	defer span.End()

	if s.markets == nil {
		return RefreshResult{}, fmt.Errorf("%w: market service is not configured", ErrDependencyUnavailable)
	}

	start := time.Now()
	feeds := s.markets.Feeds()
	result := RefreshResult{FeedCount: len(feeds)}

	for _, item := range feeds {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := s.markets.InvalidateSport(ctx, item.SportKey); err != nil {
			s.logger.WarnContext(ctx, "invalidate boards before refresh failed", "sport_key", item.SportKey, "error", err)
		}
		boards, err := s.markets.ListBoards(ctx, item.SportKey)
		if err != nil {
			result.FailedCount++
			s.logger.WarnContext(ctx, "refresh feed failed", "sport_key", item.SportKey, "error", err)
			continue
		}
		result.SuccessCount++
		result.BoardCount += len(boards)
	}

	result.Duration = time.Since(start)
	s.metrics.RecordRefresh(result.status(), result.Duration)
	s.logger.InfoContext(ctx, "odds refresh finished",
		"feeds", result.FeedCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"boards", result.BoardCount,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// Start refreshes immediately and then on every tick until ctx ends.
func (s *RefreshService) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", ErrInvalidInput)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WarnContext(ctx, "odds refresh run failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
