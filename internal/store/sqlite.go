// Package store persists session statistics and the pending-transfer
// queue in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/statistics"
)

// Counter names used as keys in the counters table.
const (
	counterWins        = "wins"
	counterLosses      = "losses"
	counterTotalEarned = "total_earned"
	counterTotalLost   = "total_lost"
	counterAbandoned   = "abandoned"
)

// SQLite is a durable statistics.Store backed by modernc.org/sqlite.
// It also implements ledger.Sink, queueing pending transfers for the
// transfer command to surface.
type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs
// migrations.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value REAL NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS pending_transfers (
			id TEXT PRIMARY KEY,
			recipient TEXT NOT NULL,
			amount REAL NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Load reads the session counters. Counters that have never been
// written read as zero.
func (s *SQLite) Load() (statistics.SessionStats, error) {
	var stats statistics.SessionStats

	rows, err := s.db.Query(`SELECT name, value FROM counters`)
	if err != nil {
		return stats, fmt.Errorf("load counters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return stats, fmt.Errorf("scan counter: %w", err)
		}
		switch name {
		case counterWins:
			stats.Wins = int(value)
		case counterLosses:
			stats.Losses = int(value)
		case counterTotalEarned:
			stats.TotalEarned = value
		case counterTotalLost:
			stats.TotalLost = value
		case counterAbandoned:
			stats.Abandoned = int(value)
		}
	}
	return stats, rows.Err()
}

// Save upserts every counter in one transaction so a round's update is
// observed whole or not at all.
func (s *SQLite) Save(stats statistics.SessionStats) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save counters: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO counters (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("save counters: %w", err)
	}
	defer stmt.Close()

	counters := []struct {
		name  string
		value float64
	}{
		{counterWins, float64(stats.Wins)},
		{counterLosses, float64(stats.Losses)},
		{counterTotalEarned, stats.TotalEarned},
		{counterTotalLost, stats.TotalLost},
		{counterAbandoned, float64(stats.Abandoned)},
	}
	for _, c := range counters {
		if _, err := stmt.Exec(c.name, c.value); err != nil {
			return fmt.Errorf("save counter %s: %w", c.name, err)
		}
	}
	return tx.Commit()
}

// EmitPendingTransfer implements ledger.Sink by queueing the transfer
// until it is settled on the host site.
func (s *SQLite) EmitPendingTransfer(t ledger.PendingTransfer) error {
	_, err := s.db.Exec(
		`INSERT INTO pending_transfers (id, recipient, amount, reason) VALUES (?, ?, ?, ?)`,
		t.ID, t.Recipient, t.Amount, t.Reason,
	)
	if err != nil {
		return fmt.Errorf("queue pending transfer: %w", err)
	}
	return nil
}

// PendingTransfers returns queued transfers, oldest first.
func (s *SQLite) PendingTransfers() ([]ledger.PendingTransfer, error) {
	rows, err := s.db.Query(
		`SELECT id, recipient, amount, reason FROM pending_transfers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list pending transfers: %w", err)
	}
	defer rows.Close()

	var transfers []ledger.PendingTransfer
	for rows.Next() {
		var t ledger.PendingTransfer
		if err := rows.Scan(&t.ID, &t.Recipient, &t.Amount, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan pending transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// ClearPendingTransfers removes all queued transfers once they have
// been settled.
func (s *SQLite) ClearPendingTransfers() error {
	if _, err := s.db.Exec(`DELETE FROM pending_transfers`); err != nil {
		return fmt.Errorf("clear pending transfers: %w", err)
	}
	return nil
}
