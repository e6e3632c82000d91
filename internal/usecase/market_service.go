package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/oddsboard/internal/domain/betslip"
	"github.com/riskibarqy/oddsboard/internal/domain/feed"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

const (
	boardCachePrefix     = "boards:"
	defaultNormalizeSize = 8
	adhocSportKey        = "adhoc"
)

type MarketServiceConfig struct {
	// Regions and Markets apply to sports without an entry in Feeds.
	Regions []string
	Markets []string
	Feeds   []feed.Request
	Workers int
}

type MarketService struct {
	provider feed.Provider
	rawRepo  rawdata.Repository
	cache    match.BoardCache
	metrics  *metrics.Metrics
	logger   *logging.Logger

	regions []string
	markets []string
	feeds   []feed.Request
	bySport map[string]feed.Request
	workers int

	normalize func(match.Snapshot) match.Board
}

func NewMarketService(
	provider feed.Provider,
	rawRepo rawdata.Repository,
	boardCache match.BoardCache,
	m *metrics.Metrics,
	logger *logging.Logger,
	cfg MarketServiceConfig,
) *MarketService {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultNormalizeSize
	}

	s := &MarketService{
		provider: provider,
		rawRepo:  rawRepo,
		cache:    boardCache,
		metrics:  m,
		logger:   logger,
		regions:  cfg.Regions,
		markets:  cfg.Markets,
		bySport:  make(map[string]feed.Request, len(cfg.Feeds)),
		workers:  workers,

		normalize: match.Snapshot.Normalize,
	}
	for _, item := range cfg.Feeds {
		req := s.withDefaults(item.Normalized())
		if req.SportKey == "" {
			continue
		}
		if _, dup := s.bySport[req.SportKey]; dup {
			continue
		}
		s.bySport[req.SportKey] = req
		s.feeds = append(s.feeds, req)
	}
	return s
}

// Feeds lists the configured feeds in configuration order.
func (s *MarketService) Feeds() []feed.Request {
	out := make([]feed.Request, len(s.feeds))
	copy(out, s.feeds)
	return out
}

// FeedFor returns the configured feed for sportKey, or the default regions
// and markets when the sport is not configured explicitly.
func (s *MarketService) FeedFor(sportKey string) feed.Request {
	req := feed.Request{SportKey: sportKey}.Normalized()
	if configured, ok := s.bySport[req.SportKey]; ok {
		return configured
	}
	return s.withDefaults(req)
}

func (s *MarketService) withDefaults(req feed.Request) feed.Request {
	if len(req.Regions) == 0 {
		req.Regions = s.regions
	}
	if len(req.Markets) == 0 {
		req.Markets = s.markets
	}
	return req.Normalized()
}

func (s *MarketService) ListBoards(ctx context.Context, sportKey string) ([]match.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ListBoards", sportAttr(sportKey))
	defer span.End()

	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("%w: sport key is required", ErrInvalidInput)
	}

	req := s.FeedFor(sportKey)
	if s.cache == nil {
		return s.loadBoards(ctx, req)
	}

	boards, err := s.cache.GetOrLoad(ctx, boardCachePrefix+req.CacheKey(), func(ctx context.Context) ([]match.Board, error) {
		return s.loadBoards(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *MarketService) ListSections(ctx context.Context, sportKey string) ([]match.Section, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ListSections", sportAttr(sportKey))
	defer span.End()

	boards, err := s.ListBoards(ctx, sportKey)
	if err != nil {
		return nil, err
	}
	return match.GroupByLeague(boards), nil
}

// GetBoard looks the match up in the sport's board list first and falls back
// to the provider's single-event endpoint.
func (s *MarketService) GetBoard(ctx context.Context, sportKey, matchID string) (match.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.GetBoard",
		sportAttr(sportKey),
		attribute.String("odds.match_id", matchID),
	)
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Board{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	boards, err := s.ListBoards(ctx, sportKey)
	if err != nil {
		return match.Board{}, err
	}
	for _, board := range boards {
		if board.ID == matchID {
			return board, nil
		}
	}

	if s.provider == nil {
		return match.Board{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	payload, err := s.provider.FetchEventOdds(ctx, s.FeedFor(sportKey), matchID)
	if err != nil {
		return match.Board{}, fmt.Errorf("fetch event odds match=%s: %w", matchID, err)
	}
	snapshots, err := match.DecodeSnapshots([]byte(payload.PayloadJSON))
	if err != nil {
		return match.Board{}, fmt.Errorf("%w: decode event odds: %v", ErrDependencyUnavailable, err)
	}
	for _, board := range s.normalizeAll(ctx, snapshots) {
		if board.ID == matchID {
			return board, nil
		}
	}
	return match.Board{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
}

// NormalizeSnapshots normalizes caller-supplied snapshots without touching
// the provider or the cache.
func (s *MarketService) NormalizeSnapshots(ctx context.Context, payload []byte) ([]match.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.NormalizeSnapshots")
	defer span.End()

	snapshots, err := match.DecodeSnapshots(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.normalizeAll(ctx, snapshots), nil
}

func (s *MarketService) BuildSlipEntry(ctx context.Context, sportKey, matchID, marketKey, selection string) (betslip.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.BuildSlipEntry", sportAttr(sportKey))
	defer span.End()

	board, err := s.GetBoard(ctx, sportKey, matchID)
	if err != nil {
		return betslip.Entry{}, err
	}

	entry, err := betslip.BuildEntry(board, marketKey, selection)
	switch {
	case err == nil:
		return entry, nil
	case errors.Is(err, betslip.ErrSelectionUnpriced):
		return betslip.Entry{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, betslip.ErrMarketNotFound), errors.Is(err, betslip.ErrSelectionNotFound):
		return betslip.Entry{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return betslip.Entry{}, fmt.Errorf("build slip entry: %w", err)
	}
}

// InvalidateSport drops every cached board list for sportKey.
func (s *MarketService) InvalidateSport(ctx context.Context, sportKey string) error {
	if s.cache == nil {
		return nil
	}
	prefix := boardCachePrefix + feed.Request{SportKey: sportKey}.Normalized().SportKey + "|"
	if err := s.cache.Invalidate(ctx, prefix); err != nil {
		return fmt.Errorf("invalidate boards sport=%s: %w", sportKey, err)
	}
	return nil
}

func (s *MarketService) loadBoards(ctx context.Context, req feed.Request) ([]match.Board, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: odds provider is not configured", ErrDependencyUnavailable)
	}

	payload, err := s.provider.FetchOdds(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		fallback, ok := s.lastStoredPayload(ctx, req.SportKey)
		if !ok {
			return nil, fmt.Errorf("fetch odds sport=%s: %w", req.SportKey, err)
		}
		s.logger.WarnContext(ctx, "odds provider failed, serving last stored payload",
			"sport_key", req.SportKey,
			"fetched_at", fallback.FetchedAt,
			"error", err,
		)
		payload = fallback
	} else {
		s.storePayload(ctx, payload)
	}

	snapshots, err := match.DecodeSnapshots([]byte(payload.PayloadJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: decode odds sport=%s: %v", ErrDependencyUnavailable, req.SportKey, err)
	}
	return s.normalizeAll(ctx, snapshots), nil
}

func (s *MarketService) storePayload(ctx context.Context, payload rawdata.Payload) {
	if s.rawRepo == nil {
		return
	}
	if err := s.rawRepo.UpsertMany(ctx, []rawdata.Payload{payload}); err != nil {
		s.logger.WarnContext(ctx, "store raw odds payload failed", "sport_key", payload.SportKey, "error", err)
	}
}

func (s *MarketService) lastStoredPayload(ctx context.Context, sportKey string) (rawdata.Payload, bool) {
	if s.rawRepo == nil {
		return rawdata.Payload{}, false
	}
	payload, ok, err := s.rawRepo.LatestBySport(ctx, sportKey)
	if err != nil {
		s.logger.WarnContext(ctx, "load stored odds payload failed", "sport_key", sportKey, "error", err)
		return rawdata.Payload{}, false
	}
	return payload, ok
}

// normalizeAll normalizes snapshots on a worker pool. A match whose
// normalization panics is logged and left out; the rest keep input order.
func (s *MarketService) normalizeAll(ctx context.Context, snapshots []match.Snapshot) []match.Board {
	boards := make([]match.Board, len(snapshots))
	done := make([]bool, len(snapshots))
	if len(snapshots) == 0 {
		return []match.Board{}
	}

	normalizeOne := func(i int) {
		snapshot := snapshots[i]
		sportKey := snapshot.SportKey
		if sportKey == "" {
			sportKey = adhocSportKey
		}

		var catcher panics.Catcher
		catcher.Try(func() { boards[i] = s.normalize(snapshot) })
		if recovered := catcher.Recovered(); recovered != nil {
			s.metrics.RecordNormalizeFailure(sportKey)
			s.logger.WarnContext(ctx, "skip match that failed to normalize",
				"sport_key", sportKey,
				"match_id", snapshot.ID,
				"error", recovered.AsError(),
			)
			return
		}
		done[i] = true
		s.metrics.RecordBoard(sportKey, len(boards[i].Markets))
	}

	workers := min(s.workers, len(snapshots))
	pool, err := ants.NewPool(workers)
	if err != nil {
		s.logger.WarnContext(ctx, "create normalize pool failed, normalizing inline", "error", err)
		for i := range snapshots {
			normalizeOne(i)
		}
		return compactBoards(boards, done)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range snapshots {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			normalizeOne(i)
		}); err != nil {
			wg.Done()
			normalizeOne(i)
		}
	}
	wg.Wait()

	return compactBoards(boards, done)
}

func compactBoards(boards []match.Board, done []bool) []match.Board {
	out := make([]match.Board, 0, len(boards))
	for i, board := range boards {
		if done[i] {
			out = append(out, board)
		}
	}
	return out
}
