// Package results persists backtest runs to a local SQLite database so
// parameter sweeps can be compared after the fact.
package results

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"tick-engine-go/posttrade"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at    DATETIME NOT NULL,
    label         TEXT     NOT NULL,
    rounds        INTEGER  NOT NULL,
    orders        INTEGER  NOT NULL,
    buys          INTEGER  NOT NULL,
    sells         INTEGER  NOT NULL,
    conversions   INTEGER  NOT NULL,
    filled_qty    INTEGER  NOT NULL,
    realized_pnl  REAL     NOT NULL
);

CREATE TABLE IF NOT EXISTS rounds (
    run_id      INTEGER NOT NULL REFERENCES runs(id),
    round       INTEGER NOT NULL,
    orders      INTEGER NOT NULL,
    filled_qty  INTEGER NOT NULL,
    realized    REAL    NOT NULL,
    PRIMARY KEY (run_id, round)
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
`

// Store writes run summaries and per-round detail. SQLite is single-writer,
// so the pool is capped at one connection.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun records one backtest run and returns its id.
func (s *Store) SaveRun(label string, sum posttrade.Summary) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, label, rounds, orders, buys, sells, conversions, filled_qty, realized_pnl)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), label, sum.Rounds, sum.OrdersEmitted, sum.BuyOrders,
		sum.SellOrders, sum.Conversions, sum.FilledQty, sum.RealizedPnL,
	)
	if err != nil {
		return 0, fmt.Errorf("results: insert run: %w", err)
	}
	return res.LastInsertId()
}

// SaveRound records one round's detail under an existing run.
func (s *Store) SaveRound(runID int64, rec posttrade.RoundRecord) error {
	orders := 0
	for _, os := range rec.Orders {
		orders += len(os)
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds (run_id, round, orders, filled_qty, realized)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, rec.Round, orders, rec.FilledQty, rec.RealizedPnL,
	)
	if err != nil {
		return fmt.Errorf("results: insert round: %w", err)
	}
	return nil
}

// RunSummary is one persisted run as read back from the database.
type RunSummary struct {
	ID          int64
	Label       string
	Rounds      int
	Orders      int
	RealizedPnL float64
}

// RecentRuns returns up to n most recent runs, newest first.
func (s *Store) RecentRuns(n int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, label, rounds, orders, realized_pnl
		 FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("results: query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Label, &r.Rounds, &r.Orders, &r.RealizedPnL); err != nil {
			return nil, fmt.Errorf("results: scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
