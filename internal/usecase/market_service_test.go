package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/oddsboard/internal/domain/betslip"
	"github.com/riskibarqy/oddsboard/internal/domain/feed"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
	feedmock "github.com/riskibarqy/oddsboard/internal/mocks/domain/feed"
	matchmock "github.com/riskibarqy/oddsboard/internal/mocks/domain/match"
	rawdatamock "github.com/riskibarqy/oddsboard/internal/mocks/domain/rawdata"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
)

const eplOddsJSON = `[
  {
    "id": "evt-ars-che",
    "sport_key": "soccer_epl",
    "sport_title": "EPL",
    "commence_time": "2026-10-17T14:00:00Z",
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "bookmakers": [
      {"key": "pinnacle", "markets": [
        {"key": "h2h", "outcomes": [{"name": "Arsenal", "price": 1.95}, {"name": "Chelsea", "price": 3.9}, {"name": "Draw", "price": 3.6}]},
        {"key": "totals", "outcomes": [{"name": "Over", "price": 1.9, "point": 2.5}, {"name": "Under", "price": 1.92, "point": 2.5}]}
      ]}
    ]
  },
  {
    "id": "evt-liv-mci",
    "sport_key": "soccer_epl",
    "home_team": "Liverpool",
    "away_team": "Manchester City",
    "bookmakers": [
      {"key": "williamhill", "markets": [
        {"key": "h2h", "outcomes": [{"name": "Liverpool", "price": 2.6}, {"name": "Manchester City", "price": 0}]}
      ]}
    ]
  }
]`

const eventOddsJSON = `{
  "id": "evt-tot-new",
  "sport_key": "soccer_epl",
  "home_team": "Tottenham Hotspur",
  "away_team": "Newcastle United",
  "bookmakers": [{"key": "pinnacle", "markets": [{"key": "spreads", "outcomes": [
    {"name": "Tottenham Hotspur", "price": 1.98, "point": -0.5},
    {"name": "Newcastle United", "price": 1.9, "point": 0.5}
  ]}]}]
}`

func eplRequest() feed.Request {
	return feed.Request{SportKey: "soccer_epl", Regions: []string{"eu", "uk"}, Markets: []string{"h2h", "totals"}}
}

func newTestMarketService(provider feed.Provider, rawRepo rawdata.Repository, boardCache match.BoardCache) *MarketService {
	return NewMarketService(provider, rawRepo, boardCache, metrics.New(), logging.NewNop(), MarketServiceConfig{
		Regions: []string{"uk", "eu"},
		Markets: []string{"totals", "h2h"},
		Workers: 2,
	})
}

func oddsPayload(raw string) rawdata.Payload {
	return rawdata.Payload{
		Source:      "the-odds-api",
		SportKey:    "soccer_epl",
		FeedKey:     eplRequest().CacheKey(),
		PayloadJSON: raw,
		PayloadHash: rawdata.HashPayload([]byte(raw)),
		FetchedAt:   time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestMarketService_ListBoards_NormalizesAndStoresPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	rawRepo := rawdatamock.NewRepository(t)
	service := newTestMarketService(provider, rawRepo, nil)

	provider.On("FetchOdds", mock.Anything, eplRequest()).Return(oddsPayload(eplOddsJSON), nil).Once()
	rawRepo.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []rawdata.Payload) bool {
			return len(items) == 1 && items[0].SportKey == "soccer_epl"
		})).
		Return(nil).
		Once()

	boards, err := service.ListBoards(ctx, " soccer_epl ")
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	if boards[0].ID != "evt-ars-che" || boards[1].ID != "evt-liv-mci" {
		t.Fatalf("expected provider order to be kept, got %s, %s", boards[0].ID, boards[1].ID)
	}
	if boards[0].LeagueTitle != "Soccer.England.Premier League" {
		t.Fatalf("unexpected league title %q", boards[0].LeagueTitle)
	}
	winner, ok := boards[1].Market("h2h")
	if !ok || len(winner.Outcomes) != 1 || winner.Outcomes[0].Name != "Liverpool" {
		t.Fatalf("expected unpriced outcome to be dropped, got %+v", winner)
	}
}

func TestMarketService_ListBoards_FallsBackToStoredPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	rawRepo := rawdatamock.NewRepository(t)
	service := newTestMarketService(provider, rawRepo, nil)

	provider.
		On("FetchOdds", mock.Anything, eplRequest()).
		Return(rawdata.Payload{}, errors.Join(ErrDependencyUnavailable, errors.New("quota exhausted"))).
		Once()
	rawRepo.On("LatestBySport", mock.Anything, "soccer_epl").Return(oddsPayload(eplOddsJSON), true, nil).Once()

	boards, err := service.ListBoards(ctx, "soccer_epl")
	if err != nil {
		t.Fatalf("expected fallback to stored payload, got %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards from stored payload, got %d", len(boards))
	}
	rawRepo.AssertNotCalled(t, "UpsertMany", mock.Anything, mock.Anything)
}

func TestMarketService_ListBoards_ProviderDownWithoutFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	rawRepo := rawdatamock.NewRepository(t)
	service := newTestMarketService(provider, rawRepo, nil)

	provider.On("FetchOdds", mock.Anything, mock.Anything).Return(rawdata.Payload{}, ErrDependencyUnavailable).Once()
	rawRepo.On("LatestBySport", mock.Anything, "soccer_epl").Return(rawdata.Payload{}, false, nil).Once()

	_, err := service.ListBoards(ctx, "soccer_epl")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestMarketService_ListBoards_StoreFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	provider := feedmock.NewProvider(t)
	rawRepo := rawdatamock.NewRepository(t)
	service := newTestMarketService(provider, rawRepo, nil)

	provider.On("FetchOdds", mock.Anything, mock.Anything).Return(oddsPayload(eplOddsJSON), nil).Once()
	rawRepo.On("UpsertMany", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	boards, err := service.ListBoards(context.Background(), "soccer_epl")
	if err != nil || len(boards) != 2 {
		t.Fatalf("expected boards despite store failure, got %d boards err=%v", len(boards), err)
	}
}

func TestMarketService_ListBoards_RequiresSportKey(t *testing.T) {
	t.Parallel()

	service := newTestMarketService(feedmock.NewProvider(t), nil, nil)
	if _, err := service.ListBoards(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMarketService_ListBoards_UsesFeedCacheKey(t *testing.T) {
	t.Parallel()

	provider := feedmock.NewProvider(t)
	boardCache := matchmock.NewBoardCache(t)
	service := newTestMarketService(provider, nil, boardCache)

	cached := []match.Board{{ID: "cached"}}
	boardCache.
		On("GetOrLoad", mock.Anything, "boards:soccer_epl|eu,uk|h2h,totals", mock.Anything).
		Return(cached, nil).
		Once()

	boards, err := service.ListBoards(context.Background(), "SOCCER_EPL")
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != "cached" {
		t.Fatalf("expected cached boards, got %+v", boards)
	}
}

func TestMarketService_ListSections(t *testing.T) {
	t.Parallel()

	provider := feedmock.NewProvider(t)
	service := newTestMarketService(provider, nil, nil)
	provider.On("FetchOdds", mock.Anything, mock.Anything).Return(oddsPayload(eplOddsJSON), nil).Once()

	sections, err := service.ListSections(context.Background(), "soccer_epl")
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 1 || sections[0].Title != "Soccer.England.Premier League" || len(sections[0].Matches) != 2 {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}

func TestMarketService_GetBoard_FallsBackToEventEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	service := newTestMarketService(provider, nil, nil)

	provider.On("FetchOdds", mock.Anything, mock.Anything).Return(oddsPayload(eplOddsJSON), nil).Twice()
	provider.On("FetchEventOdds", mock.Anything, eplRequest(), "evt-tot-new").Return(oddsPayload(eventOddsJSON), nil).Once()
	provider.On("FetchEventOdds", mock.Anything, eplRequest(), "evt-missing").Return(rawdata.Payload{}, ErrNotFound).Once()

	board, err := service.GetBoard(ctx, "soccer_epl", "evt-tot-new")
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	spreads, ok := board.Market("spreads")
	if !ok || spreads.Outcomes[0].Name != "Tottenham Hotspur (-0.5)" {
		t.Fatalf("unexpected spreads market: %+v", spreads)
	}

	if _, err := service.GetBoard(ctx, "soccer_epl", "evt-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarketService_BuildSlipEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	service := newTestMarketService(provider, nil, nil)
	provider.On("FetchOdds", mock.Anything, mock.Anything).Return(oddsPayload(eplOddsJSON), nil)

	entry, err := service.BuildSlipEntry(ctx, "soccer_epl", "evt-ars-che", "total_goals", "under (2.5)")
	if err != nil {
		t.Fatalf("build slip entry: %v", err)
	}
	if entry.MarketKey != "totals" || entry.Selection != "Under (2.5)" || entry.Odds != 1.92 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	_, err = service.BuildSlipEntry(ctx, "soccer_epl", "evt-ars-che", "btts", "Yes")
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, betslip.ErrMarketNotFound) {
		t.Fatalf("expected ErrNotFound wrapping ErrMarketNotFound, got %v", err)
	}

	_, err = service.BuildSlipEntry(ctx, "soccer_epl", "evt-ars-che", "h2h", "Tottenham")
	if !errors.Is(err, betslip.ErrSelectionNotFound) {
		t.Fatalf("expected ErrSelectionNotFound, got %v", err)
	}
}

func TestMarketService_NormalizeSnapshots(t *testing.T) {
	t.Parallel()

	service := newTestMarketService(nil, nil, nil)

	boards, err := service.NormalizeSnapshots(context.Background(), []byte(eventOddsJSON))
	if err != nil {
		t.Fatalf("normalize snapshots: %v", err)
	}
	if len(boards) != 1 || boards[0].HomeTeam != "Tottenham Hotspur" {
		t.Fatalf("unexpected boards: %+v", boards)
	}

	if _, err := service.NormalizeSnapshots(context.Background(), []byte(" ")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty body, got %v", err)
	}
}

func TestMarketService_NormalizeSkipsPanickingMatch(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	service := NewMarketService(nil, nil, nil, m, logging.NewNop(), MarketServiceConfig{Workers: 3})
	service.normalize = func(s match.Snapshot) match.Board {
		if s.ID == "bad" {
			panic("corrupt snapshot")
		}
		return s.Normalize()
	}

	boards, err := service.NormalizeSnapshots(context.Background(), []byte(`[
		{"id":"a","sport_key":"basketball_nba"},
		{"id":"bad","sport_key":"basketball_nba"},
		{"id":"c"}
	]`))
	if err != nil {
		t.Fatalf("normalize snapshots: %v", err)
	}
	if len(boards) != 2 || boards[0].ID != "a" || boards[1].ID != "c" {
		t.Fatalf("expected the panicking match to be skipped, got %+v", boards)
	}
}

func TestMarketService_FeedConfiguration(t *testing.T) {
	t.Parallel()

	service := NewMarketService(nil, nil, nil, nil, nil, MarketServiceConfig{
		Regions: []string{"us"},
		Markets: []string{"h2h"},
		Feeds: []feed.Request{
			{SportKey: "basketball_nba", Markets: []string{"spreads", "h2h"}},
			{SportKey: "BASKETBALL_NBA", Regions: []string{"eu"}},
			{SportKey: " "},
			{SportKey: "icehockey_nhl"},
		},
	})

	feeds := service.Feeds()
	if len(feeds) != 2 {
		t.Fatalf("expected duplicate and empty feeds to be dropped, got %+v", feeds)
	}
	if got := feeds[0].CacheKey(); got != "basketball_nba|us|h2h,spreads" {
		t.Fatalf("unexpected first feed %q", got)
	}
	if got := service.FeedFor("soccer_epl").CacheKey(); got != "soccer_epl|us|h2h" {
		t.Fatalf("unexpected default feed %q", got)
	}
}

func TestMarketService_InvalidateSport(t *testing.T) {
	t.Parallel()

	boardCache := matchmock.NewBoardCache(t)
	service := newTestMarketService(nil, nil, boardCache)
	boardCache.On("Invalidate", mock.Anything, "boards:soccer_epl|").Return(nil).Once()

	if err := service.InvalidateSport(context.Background(), "Soccer_EPL"); err != nil {
		t.Fatalf("invalidate sport: %v", err)
	}
}
