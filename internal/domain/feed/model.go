package feed

import (
	"slices"
	"strings"
)

// Request selects one odds feed: a sport plus the bookmaker regions and
// market keys to quote.
type Request struct {
	SportKey string
	Regions  []string
	Markets  []string
}

// Normalized lowercases and trims every field and sorts regions and markets
// so equal feeds share one cache key.
func (r Request) Normalized() Request {
	return Request{
		SportKey: strings.ToLower(strings.TrimSpace(r.SportKey)),
		Regions:  normalizeList(r.Regions),
		Markets:  normalizeList(r.Markets),
	}
}

// CacheKey identifies the feed, e.g. "soccer_epl|eu,uk|h2h,totals".
func (r Request) CacheKey() string {
	n := r.Normalized()
	return n.SportKey + "|" + strings.Join(n.Regions, ",") + "|" + strings.Join(n.Markets, ",")
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" || slices.Contains(out, value) {
			continue
		}
		out = append(out, value)
	}
	slices.Sort(out)
	return out
}
