package market

import (
	"strings"
	"testing"
)

func point(v float64) *float64 {
	return &v
}

func TestNormalizeOutcomesWinner(t *testing.T) {
	got := NormalizeOutcomes("h2h", []RawOutcome{
		{Name: "1", Price: 2.1},
		{Name: "X", Price: 3.3},
		{Name: "away win", Price: 0},
		{Name: "2", Price: 3.6},
		{Name: "home", Price: 2.2},
		{Name: "Tie", Price: 3.1},
	}, "Arsenal", "Chelsea")

	want := []CanonicalOutcome{
		{Name: "Arsenal", Price: 2.1},
		{Name: "Draw", Price: 3.3},
		{Name: "Chelsea", Price: 3.6},
	}
	assertOutcomes(t, got, want)
}

func TestNormalizeOutcomesWinnerKeepsUnknownNames(t *testing.T) {
	got := NormalizeOutcomes("winner", []RawOutcome{
		{Name: "Real Madrid", Price: 1.9},
		{Name: "real madrid", Price: 1.95},
	}, "", "")

	assertOutcomes(t, got, []CanonicalOutcome{{Name: "Real Madrid", Price: 1.9}})
}

func TestNormalizeOutcomesWinnerDefaultsTeamNames(t *testing.T) {
	got := NormalizeOutcomes("winner", []RawOutcome{
		{Name: "homewin", Price: 1.5},
		{Name: "awaywin", Price: 2.5},
	}, " ", "")

	assertOutcomes(t, got, []CanonicalOutcome{
		{Name: "Home", Price: 1.5},
		{Name: "Away", Price: 2.5},
	})
}

func TestNormalizeOutcomesTotalsFoldsTeamAndPoint(t *testing.T) {
	got := NormalizeOutcomes("totals", []RawOutcome{
		{Name: "home over", Price: 1.9, Point: point(1.5)},
	}, "Arsenal", "Chelsea")

	assertOutcomes(t, got, []CanonicalOutcome{{Name: "Arsenal Over (1.5)", Price: 1.9}})
}

func TestNormalizeOutcomesTotals(t *testing.T) {
	got := NormalizeOutcomes("total_goals", []RawOutcome{
		{Name: "Over", Price: 1.85, Point: point(2.5)},
		{Name: "Under", Price: 1.95, Point: point(2.5)},
		{Name: "Total", Price: 1.7, Point: point(2.5)},
		{Name: "o", Price: 1.8, Point: point(3)},
		{Name: "u (2.5)", Price: 1.99, Point: point(2.5)},
		{Name: "away under", Price: 2.05, Point: point(0.5)},
		{Name: "home over", Price: 0, Point: point(1.5)},
	}, "Arsenal", "Chelsea")

	want := []CanonicalOutcome{
		{Name: "Over (2.5)", Price: 1.85},
		{Name: "Under (2.5)", Price: 1.95},
		{Name: "Chelsea Under (0.5)", Price: 2.05},
	}
	assertOutcomes(t, got, want)

	for _, outcome := range got {
		if !strings.Contains(outcome.Name, "Over") && !strings.Contains(outcome.Name, "Under") {
			t.Fatalf("totals outcome %q is neither Over nor Under", outcome.Name)
		}
		if outcome.Point != nil {
			t.Fatalf("totals outcome %q kept its point", outcome.Name)
		}
	}
}

func TestNormalizeOutcomesTotalsPrefersPricedDuplicate(t *testing.T) {
	got := NormalizeOutcomes("totals", []RawOutcome{
		{Name: "Over", Price: 0, Point: point(2.5)},
		{Name: "over", Price: 1.91, Point: point(2.5)},
	}, "A", "B")

	assertOutcomes(t, got, []CanonicalOutcome{{Name: "Over (2.5)", Price: 1.91}})
}

func TestNormalizeOutcomesSpreads(t *testing.T) {
	got := NormalizeOutcomes("spreads", []RawOutcome{
		{Name: "Home", Price: 1.85, Point: point(-1.5)},
		{Name: "Away", Price: 1.95, Point: point(1.5)},
	}, "X", "Y")

	assertOutcomes(t, got, []CanonicalOutcome{
		{Name: "X (-1.5)", Price: 1.85},
		{Name: "Y (+1.5)", Price: 1.95},
	})
}

func TestNormalizeOutcomesSpreadsCollapsesSides(t *testing.T) {
	got := NormalizeOutcomes("asian_handicap", []RawOutcome{
		{Name: "Boston Celtics", Price: 1.9, Point: point(-4.5)},
		{Name: "Miami Heat", Price: 1.9, Point: point(4.5)},
		{Name: "Boston Celtics", Price: 2.4, Point: point(-7.5)},
		{Name: "Miami Heat", Price: 1.6, Point: point(7.5)},
		{Name: "home", Price: 2.0, Point: point(0)},
		{Name: "Draw", Price: 3.0, Point: point(0.25)},
		{Name: "Draw", Price: 3.2},
	}, "Boston Celtics", "Miami Heat")

	want := []CanonicalOutcome{
		{Name: "Boston Celtics (-4.5)", Price: 1.9},
		{Name: "Miami Heat (+4.5)", Price: 1.9},
		{Name: "Draw (0.25)", Price: 3.0},
		{Name: "Draw", Price: 3.2},
	}
	assertOutcomes(t, got, want)

	sides := 0
	for _, outcome := range got {
		if strings.HasPrefix(outcome.Name, "Boston") || strings.HasPrefix(outcome.Name, "Miami") {
			sides++
		}
	}
	if sides > 2 {
		t.Fatalf("expected at most two side outcomes, got %d", sides)
	}
}

func TestNormalizeOutcomesSpreadsWithoutPoint(t *testing.T) {
	got := NormalizeOutcomes("spreads", []RawOutcome{
		{Name: "home", Price: 1.8},
		{Name: "away", Price: 2.0},
	}, "", "")

	assertOutcomes(t, got, []CanonicalOutcome{
		{Name: "Home", Price: 1.8},
		{Name: "Away", Price: 2.0},
	})
}

func TestNormalizeOutcomesPassthroughMarket(t *testing.T) {
	got := NormalizeOutcomes("player_points", []RawOutcome{
		{Name: "Over", Description: "Jayson Tatum", Price: 1.87, Point: point(27.5)},
		{Name: "Over", Description: "Jimmy Butler", Price: 1.9, Point: point(22.5)},
		{Name: "over", Description: "jayson tatum", Price: 1.8, Point: point(27.5)},
		{Name: "Under", Description: "Jayson Tatum", Price: -1, Point: point(27.5)},
	}, "Boston Celtics", "Miami Heat")

	want := []CanonicalOutcome{
		{Name: "Over", Description: "Jayson Tatum", Price: 1.87, Point: point(27.5)},
		{Name: "Over", Description: "Jimmy Butler", Price: 1.9, Point: point(22.5)},
	}
	assertOutcomes(t, got, want)
}

func TestNormalizeOutcomesNeverReturnsUnpriced(t *testing.T) {
	inputs := []RawOutcome{
		{Name: "home", Price: 0},
		{Name: "away", Price: -2},
		{Name: "draw", Price: 0, Point: point(1)},
		{Name: "over", Price: 0, Point: point(2.5)},
		{Name: "under", Price: 1.7, Point: point(2.5)},
		{Name: "Home", Price: 1.2, Point: point(-1)},
	}

	for _, key := range []string{"winner", "totals", "spreads", "outrights", "btts"} {
		got := NormalizeOutcomes(key, inputs, "A", "B")
		if got == nil {
			t.Fatalf("%s: expected non-nil outcomes", key)
		}
		for _, outcome := range got {
			if outcome.Price <= 0 {
				t.Fatalf("%s: outcome %q surfaced with price %v", key, outcome.Name, outcome.Price)
			}
		}
	}
}

func TestFormatPoint(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 1.5, want: "1.5"},
		{in: -2, want: "-2"},
		{in: 0.25, want: "0.25"},
		{in: 10, want: "10"},
	}
	for _, tc := range tests {
		if got := formatPoint(tc.in); got != tc.want {
			t.Fatalf("formatPoint(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func assertOutcomes(t *testing.T, got, want []CanonicalOutcome) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("unexpected outcome count: got=%d want=%d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Name != w.Name || g.Price != w.Price || g.Description != w.Description {
			t.Fatalf("outcome %d mismatch: got=%+v want=%+v", i, g, w)
		}
		switch {
		case g.Point == nil && w.Point == nil:
		case g.Point == nil || w.Point == nil:
			t.Fatalf("outcome %d point mismatch: got=%v want=%v", i, g.Point, w.Point)
		case *g.Point != *w.Point:
			t.Fatalf("outcome %d point mismatch: got=%v want=%v", i, *g.Point, *w.Point)
		}
	}
}
