package rawdata

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
	LatestBySport(ctx context.Context, sportKey string) (Payload, bool, error)
}
