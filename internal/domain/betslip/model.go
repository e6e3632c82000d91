package betslip

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/oddsboard/internal/domain/market"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
)

var (
	ErrMarketNotFound    = crerr.New("market not found")
	ErrSelectionNotFound = crerr.New("selection not found")
	ErrSelectionUnpriced = crerr.New("selection is not quotable")
)

// Entry is one outcome a user picked, priced at the moment it was picked.
type Entry struct {
	MatchID      string
	MarketKey    string
	MarketTitle  string
	Selection    string
	Description  string
	Odds         float64
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
}

// BuildEntry resolves a selection on a board into a slip entry. The market
// key may use any provider spelling; the selection is matched against
// canonical outcome names ignoring case.
func BuildEntry(board match.Board, marketKey, selection string) (Entry, error) {
	item, ok := board.Market(marketKey)
	if !ok {
		return Entry{}, crerr.Wrapf(ErrMarketNotFound, "match %s market %q", board.ID, marketKey)
	}

	outcome, ok := findOutcome(item.Outcomes, selection)
	if !ok {
		return Entry{}, crerr.Wrapf(ErrSelectionNotFound, "market %s selection %q", item.Key, selection)
	}
	if outcome.Price <= 0 {
		return Entry{}, crerr.Wrapf(ErrSelectionUnpriced, "market %s selection %q", item.Key, outcome.Name)
	}

	return Entry{
		MatchID:      board.ID,
		MarketKey:    item.Key,
		MarketTitle:  item.Title,
		Selection:    outcome.Name,
		Description:  outcome.Description,
		Odds:         outcome.Price,
		HomeTeam:     board.HomeTeam,
		AwayTeam:     board.AwayTeam,
		CommenceTime: board.CommenceTime,
	}, nil
}

func findOutcome(outcomes []market.CanonicalOutcome, selection string) (market.CanonicalOutcome, bool) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return market.CanonicalOutcome{}, false
	}
	for _, outcome := range outcomes {
		if strings.EqualFold(outcome.Name, selection) {
			return outcome, true
		}
	}
	return market.CanonicalOutcome{}, false
}
