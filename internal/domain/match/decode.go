package match

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/oddsboard/internal/domain/market"
)

var ErrEmptyPayload = crerr.New("empty snapshot payload")

// DecodeSnapshots reads a JSON array of snapshots, a single snapshot object,
// or an object wrapping the array under "data". Elements that are not objects
// are skipped.
func DecodeSnapshots(payload []byte) ([]Snapshot, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	var root any
	if err := sonic.Unmarshal(trimmed, &root); err != nil {
		return nil, crerr.Wrap(err, "decode snapshot payload")
	}

	var items []any
	switch typed := root.(type) {
	case []any:
		items = typed
	case map[string]any:
		if data, ok := typed["data"].([]any); ok {
			items = data
		} else {
			items = []any{typed}
		}
	default:
		return nil, crerr.Newf("decode snapshot payload: unexpected json %T", root)
	}

	out := make([]Snapshot, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, DecodeSnapshot(obj))
	}
	return out, nil
}

// DecodeSnapshot maps a loosely typed provider object into a Snapshot. Both
// snake_case and camelCase spellings are accepted, numbers may arrive as
// strings, and malformed collections decode as empty.
func DecodeSnapshot(raw map[string]any) Snapshot {
	return Snapshot{
		ID:           getString(raw, "id", "event_id", "eventId"),
		SportKey:     getString(raw, "sport_key", "sport"),
		SportTitle:   getString(raw, "sport_title", "sportTitle"),
		HomeTeam:     getString(raw, "home_team", "homeTeam"),
		AwayTeam:     getString(raw, "away_team", "awayTeam"),
		CommenceTime: getTime(raw, "commence_time", "startTime"),
		Country:      getString(raw, "country"),
		League:       getString(raw, "league", "league_name", "leagueName"),
		Bookmakers:   decodeBookmakers(raw["bookmakers"]),
		Markets:      decodeMarkets(raw["markets"]),
	}
}

func decodeBookmakers(raw any) []market.RawBookmaker {
	items, _ := raw.([]any)
	out := make([]market.RawBookmaker, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, market.RawBookmaker{
			Key:     getString(obj, "key"),
			Title:   getString(obj, "title"),
			Markets: decodeMarkets(obj["markets"]),
		})
	}
	return out
}

func decodeMarkets(raw any) []market.RawMarket {
	items, _ := raw.([]any)
	out := make([]market.RawMarket, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, market.RawMarket{
			Key:      getString(obj, "key"),
			Title:    getString(obj, "title", "name"),
			Outcomes: decodeOutcomes(obj["outcomes"]),
		})
	}
	return out
}

func decodeOutcomes(raw any) []market.RawOutcome {
	items, _ := raw.([]any)
	out := make([]market.RawOutcome, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		price, _ := asFloat64(obj["price"])
		out = append(out, market.RawOutcome{
			Name:        getString(obj, "name"),
			Price:       price,
			Point:       getFloatPtr(obj, "point"),
			Description: getString(obj, "description"),
		})
	}
	return out
}

func getString(src map[string]any, keys ...string) string {
	for _, key := range keys {
		switch typed := src[key].(type) {
		case string:
			if value := strings.TrimSpace(typed); value != "" {
				return value
			}
		case float64:
			return strconv.FormatFloat(typed, 'f', -1, 64)
		}
	}
	return ""
}

func getFloatPtr(src map[string]any, key string) *float64 {
	value, ok := asFloat64(src[key])
	if !ok {
		return nil
	}
	return &value
}

func getTime(src map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		switch typed := src[key].(type) {
		case string:
			parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(typed))
			if err == nil {
				return parsed.UTC()
			}
		case float64:
			if typed > 0 {
				return time.Unix(int64(typed), 0).UTC()
			}
		}
	}
	return time.Time{}
}

func asFloat64(value any) (float64, bool) {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case int64:
		out = float64(typed)
	case int:
		out = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}
