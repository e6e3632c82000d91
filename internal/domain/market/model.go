package market

// CanonicalKey identifies a market after provider aliases have been folded.
// Keys outside the constants below are passed through unchanged.
type CanonicalKey string

const (
	KeyWinner    CanonicalKey = "winner"
	KeyTotals    CanonicalKey = "totals"
	KeySpreads   CanonicalKey = "spreads"
	KeyOutrights CanonicalKey = "outrights"
)

// RawOutcome is one selection as quoted by a single bookmaker.
// A Price of zero or below means the selection is not currently quotable.
type RawOutcome struct {
	Name        string
	Price       float64
	Point       *float64
	Description string
}

// RawMarket is a provider market; Key spelling depends on the provider.
type RawMarket struct {
	Key      string
	Title    string
	Outcomes []RawOutcome
}

type RawBookmaker struct {
	Key     string
	Title   string
	Markets []RawMarket
}

// CanonicalMarket is the deduplicated, display-ready market for one match.
type CanonicalMarket struct {
	Key      string
	Title    string
	Outcomes []CanonicalOutcome
}

type CanonicalOutcome struct {
	Name        string
	Price       float64
	Point       *float64
	Description string
}

func (o RawOutcome) priced() bool {
	return o.Price > 0
}
