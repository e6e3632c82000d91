package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/oddsboard/internal/domain/feed"
	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/domain/market"
	"github.com/riskibarqy/oddsboard/internal/platform/cache"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
)

const (
	catalogCacheKeyAll    = "sports:all"
	catalogCacheKeyActive = "sports:active"
	defaultCatalogTTL     = 10 * time.Minute
)

// MarketTitle is a resolved market key with its display title.
type MarketTitle struct {
	Key          string
	CanonicalKey string
	Title        string
}

type LeagueService struct {
	provider feed.Provider
	catalog  *cache.Store[[]league.League]
	logger   *logging.Logger
}

func NewLeagueService(provider feed.Provider, catalogTTL time.Duration, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	if catalogTTL <= 0 {
		catalogTTL = defaultCatalogTTL
	}
	return &LeagueService{
		provider: provider,
		catalog:  cache.NewStore[[]league.League](catalogTTL),
		logger:   logger,
	}
}

// ListLeagues returns the provider's sport catalog. Entries the provider
// sends without a key or title are dropped.
func (s *LeagueService) ListLeagues(ctx context.Context, includeInactive bool) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: odds provider is not configured", ErrDependencyUnavailable)
	}

	key := catalogCacheKeyActive
	if includeInactive {
		key = catalogCacheKeyAll
	}
	leagues, err := s.catalog.GetOrLoad(ctx, key, func(ctx context.Context) ([]league.League, error) {
		items, err := s.provider.FetchSports(ctx, includeInactive)
		if err != nil {
			return nil, err
		}

		out := make([]league.League, 0, len(items))
		for _, item := range items {
			if err := item.Validate(); err != nil {
				s.logger.WarnContext(ctx, "skip invalid sport from provider", "key", item.Key, "error", err)
				continue
			}
			if !includeInactive && !item.Active {
				continue
			}
			out = append(out, item)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) ComposeTitle(ctx context.Context, input league.TitleInput) (string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.ComposeTitle")
	defer span.End()

	if strings.TrimSpace(input.SportKeyOrName) == "" &&
		strings.TrimSpace(input.Country) == "" &&
		strings.TrimSpace(input.LeagueName) == "" &&
		strings.TrimSpace(input.FallbackSportTitle) == "" {
		return "", fmt.Errorf("%w: at least one of sport, country, league or fallback is required", ErrInvalidInput)
	}

	return league.ComposeTitle(input), nil
}

func (s *LeagueService) MarketTitle(ctx context.Context, key string) (MarketTitle, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.MarketTitle")
	defer span.End()

	key = strings.TrimSpace(key)
	if key == "" {
		return MarketTitle{}, fmt.Errorf("%w: market key is required", ErrInvalidInput)
	}

	return MarketTitle{
		Key:          key,
		CanonicalKey: market.NormalizeKey(key),
		Title:        market.Title(key),
	}, nil
}
