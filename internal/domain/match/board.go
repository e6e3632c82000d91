package match

import (
	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/domain/market"
)

// Normalize reduces the snapshot to canonical markets. Markets grouped
// upstream are preferred over raw bookmaker quotes when both are present.
func (s Snapshot) Normalize() Board {
	var markets []market.CanonicalMarket
	if len(s.Markets) > 0 {
		markets = market.NormalizeMarkets(s.Markets, s.HomeTeam, s.AwayTeam)
	} else {
		markets = market.Aggregate(s.Bookmakers, s.HomeTeam, s.AwayTeam)
	}

	return Board{
		ID:           s.ID,
		SportKey:     s.SportKey,
		SportTitle:   s.SportTitle,
		LeagueTitle:  s.LeagueTitle(),
		HomeTeam:     s.HomeTeam,
		AwayTeam:     s.AwayTeam,
		CommenceTime: s.CommenceTime,
		Bookmakers:   len(s.Bookmakers),
		Markets:      markets,
	}
}

func (s Snapshot) LeagueTitle() string {
	return league.ComposeTitle(league.TitleInput{
		SportKeyOrName:     s.SportKey,
		Country:            s.Country,
		LeagueName:         s.League,
		FallbackSportTitle: s.SportTitle,
	})
}

// Market returns the canonical market stored under key, which may be given
// in any provider spelling.
func (b Board) Market(key string) (market.CanonicalMarket, bool) {
	canonical := market.NormalizeKey(key)
	for _, item := range b.Markets {
		if item.Key == canonical {
			return item, true
		}
	}
	return market.CanonicalMarket{}, false
}

// GroupByLeague buckets boards by league title in first-seen order.
func GroupByLeague(boards []Board) []Section {
	sections := make([]Section, 0)
	indexByTitle := make(map[string]int)
	for _, board := range boards {
		i, ok := indexByTitle[board.LeagueTitle]
		if !ok {
			i = len(sections)
			indexByTitle[board.LeagueTitle] = i
			sections = append(sections, Section{Title: board.LeagueTitle})
		}
		sections[i].Matches = append(sections[i].Matches, board)
	}
	return sections
}
