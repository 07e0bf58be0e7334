package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tadawul/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ SignalStore = (*SQLiteStore)(nil)
var _ TradeJournal = (*SQLiteStore)(nil)

// SQLiteStore implements SignalStore and TradeJournal backed by a SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol      TEXT    NOT NULL,
	type        TEXT    NOT NULL,
	price       REAL    NOT NULL,
	timestamp   INTEGER NOT NULL,
	confidence  REAL    NOT NULL,
	reason      TEXT    NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol, timestamp);

CREATE TABLE IF NOT EXISTS trades (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol      TEXT    NOT NULL,
	shares      INTEGER NOT NULL,
	entry_price REAL    NOT NULL,
	entry_time  INTEGER NOT NULL,
	exit_price  REAL    NOT NULL,
	exit_time   INTEGER NOT NULL,
	profit      REAL    NOT NULL,
	return_pct  REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol, exit_time);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, applies the
// schema, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// SignalStore implementation
// ---------------------------------------------------------------------------

// SaveSignal inserts a new signal into the database.
func (s *SQLiteStore) SaveSignal(ctx context.Context, sig *domain.Signal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signals (symbol, type, price, timestamp, confidence, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sig.Symbol, string(sig.Type), sig.Price, sig.Timestamp.UnixMilli(),
		sig.Confidence, sig.Reason, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting signal for %s: %w", sig.Symbol, err)
	}
	return nil
}

// ListSignals returns the most recent signals for a symbol, newest first, up
// to limit. An empty symbol matches all symbols.
func (s *SQLiteStore) ListSignals(ctx context.Context, symbol string, limit int) ([]domain.Signal, error) {
	query := `SELECT symbol, type, price, timestamp, confidence, reason
	          FROM signals WHERE (? = '' OR symbol = ?)
	          ORDER BY timestamp DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, symbol, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("listing signals: %w", err)
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var sig domain.Signal
		var typ string
		var ts int64
		if err := rows.Scan(&sig.Symbol, &typ, &sig.Price, &ts, &sig.Confidence, &sig.Reason); err != nil {
			return nil, fmt.Errorf("scanning signal: %w", err)
		}
		sig.Type = domain.SignalType(typ)
		sig.Timestamp = time.UnixMilli(ts)
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

// ---------------------------------------------------------------------------
// TradeJournal implementation
// ---------------------------------------------------------------------------

// SaveTrades appends a batch of closed trades to the journal in a single
// transaction.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning trade insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trades (symbol, shares, entry_price, entry_time, exit_price, exit_time, profit, return_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing trade insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			t.Symbol, t.Shares, t.EntryPrice, t.EntryTime.UnixMilli(),
			t.ExitPrice, t.ExitTime.UnixMilli(), t.Profit, t.ReturnPct,
		); err != nil {
			return fmt.Errorf("inserting trade for %s: %w", t.Symbol, err)
		}
	}
	return tx.Commit()
}

// ListTrades returns all journaled trades for a symbol, oldest first.
func (s *SQLiteStore) ListTrades(ctx context.Context, symbol string) ([]domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, shares, entry_price, entry_time, exit_price, exit_time, profit, return_pct
		 FROM trades WHERE symbol = ? ORDER BY exit_time ASC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var entryTS, exitTS int64
		if err := rows.Scan(&t.Symbol, &t.Shares, &t.EntryPrice, &entryTS,
			&t.ExitPrice, &exitTS, &t.Profit, &t.ReturnPct); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		t.EntryTime = time.UnixMilli(entryTS)
		t.ExitTime = time.UnixMilli(exitTS)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
