package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/oddsboard/internal/domain/market"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to Redis: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(ctx)
		_ = client.Close()
	})
	return client
}

func TestRedisBoardCacheRoundTrip(t *testing.T) {
	client := getTestRedisClient(t)
	c := NewRedisBoardCache(client, time.Minute, nil, logging.NewNop())
	ctx := context.Background()

	point := 2.5
	boards := []match.Board{{
		ID:           "evt-1",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC),
		Markets: []market.CanonicalMarket{{
			Key:      "player_shots",
			Title:    "Player Shots",
			Outcomes: []market.CanonicalOutcome{{Name: "Over", Description: "Saka", Price: 2.1, Point: &point}},
		}},
	}}

	loads := 0
	loader := func(context.Context) ([]match.Board, error) {
		loads++
		return boards, nil
	}

	if _, err := c.GetOrLoad(ctx, "boards:soccer_epl|uk|h2h", loader); err != nil {
		t.Fatalf("first load: %v", err)
	}
	got, err := c.GetOrLoad(ctx, "boards:soccer_epl|uk|h2h", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
	outcome := got[0].Markets[0].Outcomes[0]
	if outcome.Point == nil || *outcome.Point != 2.5 || outcome.Description != "Saka" {
		t.Fatalf("unexpected decoded outcome: %+v", outcome)
	}
	if !got[0].CommenceTime.Equal(boards[0].CommenceTime) {
		t.Fatalf("unexpected commence time: %v", got[0].CommenceTime)
	}

	if err := c.Invalidate(ctx, "boards:soccer_epl|"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.GetOrLoad(ctx, "boards:soccer_epl|uk|h2h", loader); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loads != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", loads)
	}
}
