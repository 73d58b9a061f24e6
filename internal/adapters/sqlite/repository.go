package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.TradeRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/pump_scout.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1) // SQLite handles concurrency internally, but Go driver benefits from limiting connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Database schema initialized/verified")

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
// NOTE: This is a basic approach. A proper migration tool is recommended for production.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		amount REAL NOT NULL,
		price REAL NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		realized_pnl REAL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol_timestamp ON trades (symbol, timestamp);
	CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades (timestamp);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// RecordTrade saves a new trade record and returns its assigned ID.
func (r *Repository) RecordTrade(ctx context.Context, trade *domain.TradeRecord) (int64, error) {
	const query = `
	INSERT INTO trades (symbol, side, amount, price, timestamp, realized_pnl)
	VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		trade.Symbol, string(trade.Side), trade.Amount, trade.Price, trade.Timestamp, trade.RealizedPnL)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trade for symbol %s: %w: %w", trade.Symbol, ports.ErrQueryFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for trade %s: %w", trade.Symbol, err)
	}
	trade.ID = id // Update the domain object with the ID
	r.logger.Debug(ctx, "Trade recorded", map[string]interface{}{"tradeID": id, "symbol": trade.Symbol, "side": trade.Side})
	return id, nil
}

// FindSince retrieves all trades executed at or after the cutoff time,
// ordered by timestamp ascending.
func (r *Repository) FindSince(ctx context.Context, cutoff time.Time) ([]*domain.TradeRecord, error) {
	const query = `
	SELECT id, symbol, side, amount, price, timestamp, COALESCE(realized_pnl, 0)
	FROM trades
	WHERE timestamp >= ?
	ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades since %s: %w: %w", cutoff.Format(time.RFC3339), ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	trades := make([]*domain.TradeRecord, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during FindSince: %w", err)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.TradeRecord struct.
func scanTrade(s scanner) (*domain.TradeRecord, error) {
	t := &domain.TradeRecord{}
	var side string
	err := s.Scan(&t.ID, &t.Symbol, &side, &t.Amount, &t.Price, &t.Timestamp, &t.RealizedPnL)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	t.Side = domain.OrderSide(side)
	return t, nil
}
