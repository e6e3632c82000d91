package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
	qb "github.com/riskibarqy/oddsboard/internal/platform/querybuilder"
)

const rawPayloadTable = "odds_raw_payloads"

const upsertRawPayloadSuffix = `ON CONFLICT (source, feed_key)
DO UPDATE SET
    sport_key = EXCLUDED.sport_key,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    ingested_at = NOW()`

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	query, args, err := buildUpsertRawPayloadsQuery(items)
	if err != nil {
		return fmt.Errorf("build upsert raw payloads query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert raw payloads count=%d: %w", len(items), err)
	}

	return nil
}

func (r *RawDataRepository) LatestBySport(ctx context.Context, sportKey string) (rawdata.Payload, bool, error) {
	query, args, err := buildLatestBySportQuery(sportKey)
	if err != nil {
		return rawdata.Payload{}, false, fmt.Errorf("build latest raw payload query: %w", err)
	}

	var row rawPayloadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rawdata.Payload{}, false, nil
		}
		return rawdata.Payload{}, false, fmt.Errorf("get latest raw payload sport=%s: %w", sportKey, err)
	}

	return row.toDomain(), true, nil
}

// buildUpsertRawPayloadsQuery writes one multi-row statement. Postgres
// refuses to update the same conflict target twice in one statement, so only
// the last payload per (source, feed_key) is kept.
func buildUpsertRawPayloadsQuery(items []rawdata.Payload) (string, []any, error) {
	type conflictKey struct{ source, feedKey string }

	indexByKey := make(map[conflictKey]int, len(items))
	models := make([]rawPayloadInsertModel, 0, len(items))
	for _, item := range items {
		model := rawPayloadInsertModel{
			Source:      item.Source,
			SportKey:    item.SportKey,
			FeedKey:     item.FeedKey,
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt.UTC(),
		}
		key := conflictKey{source: item.Source, feedKey: item.FeedKey}
		if i, dup := indexByKey[key]; dup {
			models[i] = model
			continue
		}
		indexByKey[key] = len(models)
		models = append(models, model)
	}

	return qb.InsertModels(rawPayloadTable, models, upsertRawPayloadSuffix)
}

func buildLatestBySportQuery(sportKey string) (string, []any, error) {
	cols, err := qb.Columns(rawPayloadTableModel{})
	if err != nil {
		return "", nil, err
	}
	return qb.Select(cols...).From(rawPayloadTable).
		Where(qb.Eq("sport_key", sportKey)).
		OrderBy("fetched_at DESC", "id DESC").
		Limit(1).
		ToSQL()
}

type rawPayloadInsertModel struct {
	Source      string    `db:"source"`
	SportKey    string    `db:"sport_key"`
	FeedKey     string    `db:"feed_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

type rawPayloadTableModel struct {
	ID          int64     `db:"id"`
	Source      string    `db:"source"`
	SportKey    string    `db:"sport_key"`
	FeedKey     string    `db:"feed_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (m rawPayloadTableModel) toDomain() rawdata.Payload {
	return rawdata.Payload{
		Source:      m.Source,
		SportKey:    m.SportKey,
		FeedKey:     m.FeedKey,
		PayloadJSON: m.Payload,
		PayloadHash: m.PayloadHash,
		FetchedAt:   m.FetchedAt.UTC(),
	}
}
