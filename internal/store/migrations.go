package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Amounts live in TEXT columns holding exact decimal strings; the
		// engine owns all arithmetic.
		`CREATE TABLE IF NOT EXISTS accounts (
			id              TEXT PRIMARY KEY,
			code            TEXT NOT NULL UNIQUE,
			name            TEXT NOT NULL,
			type            TEXT NOT NULL CHECK (type IN ('Asset','Liability','Equity','Income','Expense')),
			opening_balance TEXT NOT NULL DEFAULT '0',
			disabled        INTEGER NOT NULL DEFAULT 0,
			created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(type)`,

		`CREATE TABLE IF NOT EXISTS vouchers (
			id         TEXT PRIMARY KEY,
			voucher_no TEXT NOT NULL,
			type       TEXT NOT NULL,
			date       TEXT NOT NULL,
			date_bs    TEXT NOT NULL DEFAULT '',
			narration  TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'Posted',
			party      TEXT NOT NULL DEFAULT '',
			party_pan  TEXT NOT NULL DEFAULT '',
			subtotal   TEXT NOT NULL DEFAULT '0',
			vat_amount TEXT NOT NULL DEFAULT '0',
			total      TEXT NOT NULL DEFAULT '0',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vouchers_type ON vouchers(type)`,
		`CREATE INDEX IF NOT EXISTS idx_vouchers_date ON vouchers(date)`,

		`CREATE TABLE IF NOT EXISTS voucher_entries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			voucher_id  TEXT NOT NULL REFERENCES vouchers(id),
			account_id  TEXT NOT NULL REFERENCES accounts(id),
			particulars TEXT NOT NULL DEFAULT '',
			debit       TEXT NOT NULL DEFAULT '0',
			credit      TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_voucher_entries_voucher ON voucher_entries(voucher_id)`,

		// seq preserves insertion order: the engine's ledger sort is stable
		// and relies on same-date transactions coming back in posting order.
		`CREATE TABLE IF NOT EXISTS transactions (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT NOT NULL UNIQUE,
			voucher_id   TEXT NOT NULL,
			voucher_no   TEXT NOT NULL,
			voucher_type TEXT NOT NULL,
			account_id   TEXT NOT NULL REFERENCES accounts(id),
			date         TEXT NOT NULL,
			date_bs      TEXT NOT NULL DEFAULT '',
			particulars  TEXT NOT NULL DEFAULT '',
			debit        TEXT NOT NULL DEFAULT '0',
			credit       TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_voucher ON transactions(voucher_id)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}
	return nil
}
