package match

import (
	"time"

	"github.com/riskibarqy/oddsboard/internal/domain/market"
)

// Snapshot is one match as quoted by the odds provider. It carries either
// per-bookmaker markets or markets grouped upstream, sometimes both.
type Snapshot struct {
	ID           string
	SportKey     string
	SportTitle   string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Country      string
	League       string
	Bookmakers   []market.RawBookmaker
	Markets      []market.RawMarket
}

// Board is the display-ready view of a match.
type Board struct {
	ID           string
	SportKey     string
	SportTitle   string
	LeagueTitle  string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Bookmakers   int
	Markets      []market.CanonicalMarket
}

// Section groups boards under one league header.
type Section struct {
	Title   string
	Matches []Board
}
