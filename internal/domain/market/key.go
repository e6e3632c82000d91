package market

import "strings"

var exchangeSuffixes = []string{"_lay", "_exchange"}

var keyAliases = map[string]CanonicalKey{
	"h2h":            KeyWinner,
	"moneyline":      KeyWinner,
	"ml":             KeyWinner,
	"winner":         KeyWinner,
	"match_winner":   KeyWinner,
	"1x2":            KeyWinner,
	"home_win":       KeyWinner,
	"away_win":       KeyWinner,
	"draw":           KeyWinner,
	"draw_result":    KeyWinner,
	"total":          KeyTotals,
	"total_goals":    KeyTotals,
	"total_points":   KeyTotals,
	"over":           KeyTotals,
	"under":          KeyTotals,
	"handicap":       KeySpreads,
	"asian_handicap": KeySpreads,
	"point_spread":   KeySpreads,
	"spread":         KeySpreads,
	"line_spread":    KeySpreads,
	"handicap_line":  KeySpreads,
}

// Providers disagree on word order for scorer markets.
var keySynonyms = map[string]string{
	"player_first_goal_scorer": "player_goal_scorer_first",
	"player_last_goal_scorer":  "player_goal_scorer_last",
}

// NormalizeKey folds a provider market key into its canonical key.
// Unknown keys pass through lowercased and without exchange suffixes.
func NormalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}

	key = stripExchangeSuffix(key)
	if canonical, ok := keyAliases[key]; ok {
		return string(canonical)
	}
	if synonym, ok := keySynonyms[key]; ok {
		return synonym
	}

	return key
}

func stripExchangeSuffix(key string) string {
	for {
		trimmed := key
		for _, suffix := range exchangeSuffixes {
			trimmed = strings.TrimSuffix(trimmed, suffix)
		}
		// A bare "_lay" stays a key of its own.
		if trimmed == key || trimmed == "" {
			return key
		}
		key = trimmed
	}
}
