package market

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/oddsboard/internal/platform/textcase"
)

const (
	defaultHomeName = "Home"
	defaultAwayName = "Away"
	drawName        = "Draw"
)

var (
	overToken     = regexp.MustCompile(`\b(over|ov|o)\b`)
	underToken    = regexp.MustCompile(`\b(under|un|u)\b`)
	homeToken     = regexp.MustCompile(`\bhome\b`)
	awayToken     = regexp.MustCompile(`\baway\b`)
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
)

var winnerLabels = map[string]string{
	"home":     defaultHomeName,
	"home win": defaultHomeName,
	"homewin":  defaultHomeName,
	"1":        defaultHomeName,
	"away":     defaultAwayName,
	"away win": defaultAwayName,
	"awaywin":  defaultAwayName,
	"2":        defaultAwayName,
	"draw":     drawName,
	"x":        drawName,
	"tie":      drawName,
}

// NormalizeOutcomes rewrites outcome labels into the display vocabulary of
// the market and collapses outcomes that name the same selection. Only priced
// outcomes are returned. Empty team names fall back to "Home" and "Away".
func NormalizeOutcomes(key string, outcomes []RawOutcome, home, away string) []CanonicalOutcome {
	home = strings.TrimSpace(home)
	if home == "" {
		home = defaultHomeName
	}
	away = strings.TrimSpace(away)
	if away == "" {
		away = defaultAwayName
	}

	priced := make([]RawOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.priced() {
			priced = append(priced, outcome)
		}
	}

	switch CanonicalKey(NormalizeKey(key)) {
	case KeyWinner:
		return normalizeWinner(priced, home, away)
	case KeyTotals:
		return normalizeTotals(priced, home, away)
	case KeySpreads:
		return normalizeSpreads(priced, home, away)
	default:
		return normalizeOther(priced)
	}
}

func normalizeWinner(outcomes []RawOutcome, home, away string) []CanonicalOutcome {
	set := newOutcomeSet(len(outcomes))
	for _, outcome := range outcomes {
		name := outcome.Name
		switch winnerLabels[strings.ToLower(strings.TrimSpace(name))] {
		case defaultHomeName:
			name = home
		case defaultAwayName:
			name = away
		case drawName:
			name = drawName
		}

		set.offer(strings.ToLower(name), CanonicalOutcome{
			Name:        name,
			Price:       outcome.Price,
			Point:       outcome.Point,
			Description: outcome.Description,
		})
	}
	return set.list()
}

func normalizeTotals(outcomes []RawOutcome, home, away string) []CanonicalOutcome {
	lowerHome := strings.ToLower(home)
	lowerAway := strings.ToLower(away)

	set := newOutcomeSet(len(outcomes))
	for _, outcome := range outcomes {
		name := strings.ToLower(outcome.Name)

		side := "over"
		loc := overToken.FindStringIndex(name)
		if loc == nil {
			side = "under"
			loc = underToken.FindStringIndex(name)
		}
		if loc == nil {
			continue
		}

		name = name[:loc[0]] + textcase.UpperFirst(side) + name[loc[1]:]
		name = homeToken.ReplaceAllLiteralString(name, home)
		name = awayToken.ReplaceAllLiteralString(name, away)
		if outcome.Point != nil && !parenthesized.MatchString(name) {
			name += " (" + formatPoint(*outcome.Point) + ")"
		}
		name = textcase.UpperFirst(strings.TrimSpace(name))

		lowerName := strings.ToLower(name)
		team := ""
		switch {
		case strings.HasPrefix(lowerName, lowerHome):
			team = "home"
		case strings.HasPrefix(lowerName, lowerAway):
			team = "away"
		}

		set.offer(team+side, CanonicalOutcome{
			Name:        name,
			Price:       outcome.Price,
			Description: outcome.Description,
		})
	}
	return set.list()
}

func normalizeSpreads(outcomes []RawOutcome, home, away string) []CanonicalOutcome {
	lowerHome := strings.ToLower(home)
	lowerAway := strings.ToLower(away)

	set := newOutcomeSet(len(outcomes))
	for _, outcome := range outcomes {
		lowerName := strings.ToLower(outcome.Name)

		label := outcome.Name
		switch {
		case strings.Contains(lowerName, lowerHome) || strings.Contains(lowerName, "home"):
			label = withPoint(home, signedPoint(outcome.Point))
		case strings.Contains(lowerName, lowerAway) || strings.Contains(lowerName, "away"):
			label = withPoint(away, signedPoint(outcome.Point))
		case outcome.Point != nil:
			label = withPoint(outcome.Name, formatPoint(*outcome.Point))
		}

		lowerLabel := strings.ToLower(label)
		signature := lowerLabel
		switch {
		case strings.Contains(lowerLabel, lowerHome):
			signature = "home"
		case strings.Contains(lowerLabel, lowerAway):
			signature = "away"
		}

		set.offer(signature, CanonicalOutcome{
			Name:        label,
			Price:       outcome.Price,
			Description: outcome.Description,
		})
	}
	return set.list()
}

func normalizeOther(outcomes []RawOutcome) []CanonicalOutcome {
	set := newOutcomeSet(len(outcomes))
	for _, outcome := range outcomes {
		set.offer(outcomeSignature(outcome.Name, outcome.Description, outcome.Point), CanonicalOutcome{
			Name:        outcome.Name,
			Price:       outcome.Price,
			Point:       outcome.Point,
			Description: outcome.Description,
		})
	}
	return set.list()
}

func outcomeSignature(name, description string, point *float64) string {
	signature := strings.ToLower(name) + "|" + strings.ToLower(description) + "|"
	if point != nil {
		signature += formatPoint(*point)
	}
	return signature
}

func withPoint(label, point string) string {
	if point == "" {
		return label
	}
	return label + " (" + point + ")"
}

func signedPoint(point *float64) string {
	if point == nil {
		return ""
	}
	formatted := formatPoint(*point)
	if *point >= 0 {
		return "+" + formatted
	}
	return formatted
}

// formatPoint prints a line the way bookmakers quote it: 1.5, -2, 0.25.
func formatPoint(point float64) string {
	if math.IsNaN(point) || math.IsInf(point, 0) {
		return strconv.FormatFloat(point, 'f', -1, 64)
	}
	return decimal.NewFromFloat(point).String()
}

// outcomeSet keeps outcomes in first-seen order keyed by a dedup signature.
// A later outcome replaces an earlier one only when the earlier one is unpriced.
type outcomeSet struct {
	index map[string]int
	items []CanonicalOutcome
}

func newOutcomeSet(capacity int) *outcomeSet {
	return &outcomeSet{
		index: make(map[string]int, capacity),
		items: make([]CanonicalOutcome, 0, capacity),
	}
}

func (s *outcomeSet) offer(signature string, outcome CanonicalOutcome) {
	if i, ok := s.index[signature]; ok {
		if !(s.items[i].Price > 0) && outcome.Price > 0 {
			s.items[i] = outcome
		}
		return
	}
	s.index[signature] = len(s.items)
	s.items = append(s.items, outcome)
}

func (s *outcomeSet) list() []CanonicalOutcome {
	out := make([]CanonicalOutcome, 0, len(s.items))
	for _, item := range s.items {
		if item.Price > 0 {
			out = append(out, item)
		}
	}
	return out
}
