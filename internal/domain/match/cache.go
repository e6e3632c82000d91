package match

import "context"

// BoardCache holds normalized boards per feed.
type BoardCache interface {
	GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]Board, error)) ([]Board, error)
	// Invalidate drops every entry whose key starts with prefix.
	Invalidate(ctx context.Context, prefix string) error
}
