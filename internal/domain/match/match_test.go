package match

import (
	"errors"
	"testing"
	"time"
)

const oddsAPIPayload = `[
  {
    "id": "e912304de2b2ce35b473ce2ecd3d1502",
    "sport_key": "soccer_epl",
    "sport_title": "EPL",
    "commence_time": "2026-10-17T14:00:00Z",
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "bookmakers": [
      {
        "key": "pinnacle",
        "title": "Pinnacle",
        "markets": [
          {"key": "h2h", "outcomes": [{"name": "Arsenal", "price": 1.95}, {"name": "Chelsea", "price": "3.9"}, {"name": "Draw", "price": 3.6}]},
          {"key": "totals", "outcomes": [{"name": "Over", "price": 1.9, "point": 2.5}, {"name": "Under", "price": 1.92, "point": "2.5"}]}
        ]
      },
      {
        "key": "betfair_ex_uk",
        "title": "Betfair",
        "markets": [
          {"key": "h2h_lay", "outcomes": [{"name": "Arsenal", "price": 0}, {"name": "Draw", "price": 3.7}]},
          {"key": "btts", "outcomes": "not-a-list"}
        ]
      },
      "garbage"
    ]
  },
  {
    "id": 42,
    "sport": "icehockey_sweden_shl",
    "homeTeam": "Frolunda",
    "awayTeam": "Lulea",
    "startTime": "not a date",
    "markets": [
      {"key": "spreads", "title": "Puck Line", "outcomes": [{"name": "Frolunda", "price": 2.1, "point": -1.5}, {"name": "Lulea", "price": 1.7, "point": 1.5}]}
    ]
  },
  7
]`

func TestDecodeSnapshots(t *testing.T) {
	snapshots, err := DecodeSnapshots([]byte(oddsAPIPayload))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	first := snapshots[0]
	if first.ID != "e912304de2b2ce35b473ce2ecd3d1502" || first.SportKey != "soccer_epl" || first.HomeTeam != "Arsenal" {
		t.Fatalf("unexpected first snapshot header: %+v", first)
	}
	if !first.CommenceTime.Equal(time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected commence time: %v", first.CommenceTime)
	}
	if len(first.Bookmakers) != 2 {
		t.Fatalf("expected non-object bookmaker to be skipped, got %d", len(first.Bookmakers))
	}
	if got := first.Bookmakers[0].Markets[0].Outcomes[1].Price; got != 3.9 {
		t.Fatalf("expected string price to decode, got %v", got)
	}
	if point := first.Bookmakers[0].Markets[1].Outcomes[1].Point; point == nil || *point != 2.5 {
		t.Fatalf("expected string point to decode, got %v", point)
	}
	if outcomes := first.Bookmakers[1].Markets[1].Outcomes; outcomes == nil || len(outcomes) != 0 {
		t.Fatalf("expected malformed outcomes to decode as empty, got %+v", outcomes)
	}

	second := snapshots[1]
	if second.ID != "42" || second.SportKey != "icehockey_sweden_shl" || second.AwayTeam != "Lulea" {
		t.Fatalf("unexpected camelCase snapshot: %+v", second)
	}
	if !second.CommenceTime.IsZero() {
		t.Fatalf("expected unparsable time to decode as zero, got %v", second.CommenceTime)
	}
}

func TestDecodeSnapshotsSingleObjectAndEnvelope(t *testing.T) {
	single, err := DecodeSnapshots([]byte(`{"id":"a","home_team":"X","away_team":"Y"}`))
	if err != nil || len(single) != 1 || single[0].HomeTeam != "X" {
		t.Fatalf("unexpected single object decode: %+v err=%v", single, err)
	}

	wrapped, err := DecodeSnapshots([]byte(`{"data":[{"id":"a"},{"id":"b"}]}`))
	if err != nil || len(wrapped) != 2 || wrapped[1].ID != "b" {
		t.Fatalf("unexpected envelope decode: %+v err=%v", wrapped, err)
	}
}

func TestDecodeSnapshotsErrors(t *testing.T) {
	if _, err := DecodeSnapshots([]byte("   ")); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if _, err := DecodeSnapshots([]byte(`{"id":`)); err == nil {
		t.Fatalf("expected error for truncated json")
	}
	if _, err := DecodeSnapshots([]byte(`"text"`)); err == nil {
		t.Fatalf("expected error for scalar json")
	}
}

func TestSnapshotNormalize(t *testing.T) {
	snapshots, err := DecodeSnapshots([]byte(oddsAPIPayload))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	board := snapshots[0].Normalize()
	if board.LeagueTitle != "Soccer.England.Premier League" {
		t.Fatalf("unexpected league title: %q", board.LeagueTitle)
	}
	if board.Bookmakers != 2 {
		t.Fatalf("unexpected bookmaker count: %d", board.Bookmakers)
	}
	if len(board.Markets) != 3 {
		t.Fatalf("expected winner, totals and btts markets, got %+v", board.Markets)
	}

	winner, ok := board.Market("moneyline")
	if !ok {
		t.Fatalf("expected winner market lookup through alias")
	}
	if len(winner.Outcomes) != 3 || winner.Outcomes[0].Name != "Arsenal" || winner.Outcomes[0].Price != 1.95 {
		t.Fatalf("unexpected winner outcomes: %+v", winner.Outcomes)
	}

	totals, _ := board.Market("totals")
	if totals.Title != "Totals" || len(totals.Outcomes) != 2 || totals.Outcomes[1].Name != "Under (2.5)" {
		t.Fatalf("unexpected totals market: %+v", totals)
	}

	if _, ok := board.Market("spreads"); ok {
		t.Fatalf("did not expect spreads market")
	}

	grouped := snapshots[1].Normalize()
	if grouped.LeagueTitle != "Ice Hockey.Sweden.Shl" {
		t.Fatalf("unexpected token-parsed league title: %q", grouped.LeagueTitle)
	}
	spreads, ok := grouped.Market("handicap")
	if !ok || spreads.Title != "Handicap" {
		t.Fatalf("unexpected spreads market: %+v", spreads)
	}
	if spreads.Outcomes[0].Name != "Frolunda (-1.5)" || spreads.Outcomes[1].Name != "Lulea (+1.5)" {
		t.Fatalf("unexpected spreads outcomes: %+v", spreads.Outcomes)
	}
}

func TestGroupByLeague(t *testing.T) {
	boards := []Board{
		{ID: "1", LeagueTitle: "Soccer.England.Premier League"},
		{ID: "2", LeagueTitle: "Soccer.Spain.La Liga"},
		{ID: "3", LeagueTitle: "Soccer.England.Premier League"},
	}

	sections := GroupByLeague(boards)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Soccer.England.Premier League" || len(sections[0].Matches) != 2 || sections[0].Matches[1].ID != "3" {
		t.Fatalf("unexpected first section: %+v", sections[0])
	}
	if sections[1].Matches[0].ID != "2" {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}

	if empty := GroupByLeague(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil sections, got %+v", empty)
	}
}
