package betslip

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/oddsboard/internal/domain/market"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
)

func testBoard() match.Board {
	return match.Board{
		ID:           "evt-1",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC),
		Markets: []market.CanonicalMarket{
			{
				Key:   "winner",
				Title: "Match Winner",
				Outcomes: []market.CanonicalOutcome{
					{Name: "Arsenal", Price: 1.95},
					{Name: "Draw", Price: 3.6},
				},
			},
			{
				Key:      "totals",
				Title:    "Totals",
				Outcomes: []market.CanonicalOutcome{{Name: "Over (2.5)", Price: 0}},
			},
		},
	}
}

func TestBuildEntry(t *testing.T) {
	entry, err := BuildEntry(testBoard(), "H2H", " draw ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.MatchID != "evt-1" || entry.MarketKey != "winner" || entry.MarketTitle != "Match Winner" {
		t.Fatalf("unexpected entry header: %+v", entry)
	}
	if entry.Selection != "Draw" || entry.Odds != 3.6 || entry.HomeTeam != "Arsenal" {
		t.Fatalf("unexpected entry selection: %+v", entry)
	}
}

func TestBuildEntryErrors(t *testing.T) {
	tests := []struct {
		name      string
		marketKey string
		selection string
		targetErr error
	}{
		{name: "unknown market", marketKey: "spreads", selection: "Arsenal", targetErr: ErrMarketNotFound},
		{name: "unknown selection", marketKey: "winner", selection: "Chelsea", targetErr: ErrSelectionNotFound},
		{name: "empty selection", marketKey: "winner", selection: "  ", targetErr: ErrSelectionNotFound},
		{name: "unpriced selection", marketKey: "total_goals", selection: "over (2.5)", targetErr: ErrSelectionUnpriced},
	}

	for _, tc := range tests {
		_, err := BuildEntry(testBoard(), tc.marketKey, tc.selection)
		if !errors.Is(err, tc.targetErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.targetErr, err)
		}
	}
}
