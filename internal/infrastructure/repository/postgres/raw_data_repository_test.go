package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
)

func TestBuildUpsertRawPayloadsQuery(t *testing.T) {
	fetchedAt := time.Date(2026, 10, 15, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	items := []rawdata.Payload{
		{Source: "the-odds-api", SportKey: "soccer_epl", FeedKey: "soccer_epl|uk|h2h", PayloadJSON: "[1]", PayloadHash: "a", FetchedAt: fetchedAt},
		{Source: "the-odds-api", SportKey: "basketball_nba", FeedKey: "basketball_nba|us|h2h", PayloadJSON: "[]", PayloadHash: "b", FetchedAt: fetchedAt},
		{Source: "the-odds-api", SportKey: "soccer_epl", FeedKey: "soccer_epl|uk|h2h", PayloadJSON: "[2]", PayloadHash: "c", FetchedAt: fetchedAt},
	}

	query, args, err := buildUpsertRawPayloadsQuery(items)
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantPrefix := "INSERT INTO odds_raw_payloads (source, sport_key, feed_key, payload, payload_hash, fetched_at) VALUES ($1, $2, $3, $4, $5, $6), ($7, $8, $9, $10, $11, $12) ON CONFLICT (source, feed_key)"
	if !strings.HasPrefix(query, wantPrefix) {
		t.Fatalf("unexpected query:\nwant prefix: %s\ngot:         %s", wantPrefix, query)
	}
	if len(args) != 12 {
		t.Fatalf("expected duplicate feed to collapse into 2 rows, got %d args", len(args))
	}
	if args[3] != "[2]" || args[4] != "c" {
		t.Fatalf("expected the last duplicate payload to win, got payload=%v hash=%v", args[3], args[4])
	}
	if got := args[5].(time.Time); got.Location() != time.UTC {
		t.Fatalf("expected fetched_at in UTC, got %v", got.Location())
	}
}

func TestBuildLatestBySportQuery(t *testing.T) {
	query, args, err := buildLatestBySportQuery("soccer_epl")
	if err != nil {
		t.Fatalf("build latest query: %v", err)
	}

	want := "SELECT id, source, sport_key, feed_key, payload, payload_hash, fetched_at FROM odds_raw_payloads WHERE sport_key = $1 ORDER BY fetched_at DESC, id DESC LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "soccer_epl" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation odds_raw_payloads does not exist")) {
		t.Fatalf("expected unrelated error to be found")
	}
}
