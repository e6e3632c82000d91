package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("sport_key", "payload_json").
		From("odds_raw_payloads").
		Where(Eq("sport_key", "soccer_epl"), Eq("source", "the-odds-api")).
		OrderBy("fetched_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT sport_key, payload_json FROM odds_raw_payloads WHERE sport_key = $1 AND source = $2 ORDER BY fetched_at DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "soccer_epl" || args[1] != "the-odds-api" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertRowsRejectsRaggedRows(t *testing.T) {
	_, _, err := insertRows("odds_raw_payloads", []string{"source", "sport_key"}, [][]any{{"the-odds-api"}}, "")
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		Source   string `db:"source"`
		SportKey string `db:"sport_key"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModels("odds_raw_payloads", []row{
		{Source: "oddsapi", SportKey: "soccer_epl"},
		{Source: "oddsapi", SportKey: "basketball_nba"},
	}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO odds_raw_payloads (source, sport_key) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "soccer_epl" || args[3] != "basketball_nba" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelsRejectsEmptyInput(t *testing.T) {
	if _, _, err := InsertModels[struct{}]("t", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
	if _, _, err := InsertModels("t", []struct{ A string }{{A: "x"}}, ""); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
}

func TestColumns(t *testing.T) {
	cols, err := Columns(&struct {
		ID   int64  `db:"id"`
		Name string `db:"name,omitempty"`
	}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "name" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}
