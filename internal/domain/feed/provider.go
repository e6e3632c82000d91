package feed

import (
	"context"

	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
)

// Provider fetches odds from an upstream feed. Odds come back as the raw
// provider body so they can be stored before decoding.
type Provider interface {
	FetchSports(ctx context.Context, includeInactive bool) ([]league.League, error)
	FetchOdds(ctx context.Context, req Request) (rawdata.Payload, error)
	FetchEventOdds(ctx context.Context, req Request, eventID string) (rawdata.Payload, error)
}
