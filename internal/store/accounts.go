package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/ledger"
)

func (s *Store) SaveAccount(ctx context.Context, a *ledger.Account) error {
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (id, code, name, type, opening_balance, disabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			opening_balance = excluded.opening_balance,
			disabled = excluded.disabled`,
		a.ID, a.Code, a.Name, string(a.Type), a.OpeningBalance.String(),
		boolToInt(a.Disabled), a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: accounts.code") {
			return fmt.Errorf("%w: %s", ledger.ErrDuplicateCode, a.Code)
		}
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, code, name, type, opening_balance, disabled, created_at
		FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, code, name, type, opening_balance, disabled, created_at
		FROM accounts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func scanAccount(scan func(...any) error) (*ledger.Account, error) {
	var a ledger.Account
	var opening, createdAt string
	var disabled int
	if err := scan(&a.ID, &a.Code, &a.Name, (*string)(&a.Type), &opening, &disabled, &createdAt); err != nil {
		return nil, err
	}
	balance, err := decimal.NewFromString(opening)
	if err != nil {
		return nil, fmt.Errorf("opening balance %q: %w", opening, err)
	}
	a.OpeningBalance = balance
	a.Disabled = disabled == 1
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
