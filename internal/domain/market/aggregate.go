package market

import "strings"

// Display titles that win over whatever the catalog or provider said.
var titleOverrides = map[CanonicalKey]string{
	KeyTotals:  "Totals",
	KeySpreads: "Handicap",
}

// Aggregate merges the markets quoted by every bookmaker of one match into
// canonical markets. Markets sharing a normalized key merge across bookmakers
// and keep the order in which their key was first seen. Groups left without
// priced outcomes are still returned.
func Aggregate(bookmakers []RawBookmaker, home, away string) []CanonicalMarket {
	groups := newMarketGroups()
	for _, bookmaker := range bookmakers {
		for _, raw := range bookmaker.Markets {
			key := NormalizeKey(raw.Key)
			if key == "" {
				continue
			}
			groups.add(key, Title(key), raw.Outcomes)
		}
	}
	return groups.normalize(home, away)
}

// NormalizeMarkets handles markets that were already grouped upstream. The
// provider title is kept when present; keys and labels are still normalized.
func NormalizeMarkets(markets []RawMarket, home, away string) []CanonicalMarket {
	groups := newMarketGroups()
	for _, raw := range markets {
		key := NormalizeKey(raw.Key)
		if key == "" {
			continue
		}
		title := strings.TrimSpace(raw.Title)
		if title == "" {
			title = Title(key)
		}
		groups.add(key, title, raw.Outcomes)
	}
	return groups.normalize(home, away)
}

type marketGroup struct {
	key      string
	title    string
	outcomes []RawOutcome
	index    map[string]int
}

type marketGroups struct {
	byKey map[string]*marketGroup
	order []*marketGroup
}

func newMarketGroups() *marketGroups {
	return &marketGroups{byKey: make(map[string]*marketGroup)}
}

func (g *marketGroups) add(key, title string, outcomes []RawOutcome) {
	group, ok := g.byKey[key]
	if !ok {
		group = &marketGroup{
			key:   key,
			title: title,
			index: make(map[string]int, len(outcomes)),
		}
		g.byKey[key] = group
		g.order = append(g.order, group)
	}

	for _, outcome := range outcomes {
		// Providers send 0 for "no line".
		if outcome.Point != nil && *outcome.Point == 0 {
			outcome.Point = nil
		}

		signature := outcomeSignature(outcome.Name, outcome.Description, outcome.Point)
		if i, seen := group.index[signature]; seen {
			if !group.outcomes[i].priced() && outcome.priced() {
				group.outcomes[i] = outcome
			}
			continue
		}
		group.index[signature] = len(group.outcomes)
		group.outcomes = append(group.outcomes, outcome)
	}
}

func (g *marketGroups) normalize(home, away string) []CanonicalMarket {
	markets := make([]CanonicalMarket, 0, len(g.order))
	for _, group := range g.order {
		title := group.title
		if override, ok := titleOverrides[CanonicalKey(group.key)]; ok {
			title = override
		}
		markets = append(markets, CanonicalMarket{
			Key:      group.key,
			Title:    title,
			Outcomes: NormalizeOutcomes(group.key, group.outcomes, home, away),
		})
	}
	return markets
}
