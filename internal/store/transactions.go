package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/ledger"
)

// SaveTransactions writes the whole batch inside one sql transaction:
// either every ledger line of a voucher lands or none does.
func (s *Store) SaveTransactions(ctx context.Context, txns []ledger.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, t := range txns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, voucher_id, voucher_no, voucher_type, account_id,
				date, date_bs, particulars, debit, credit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.VoucherID, t.VoucherNo, string(t.VoucherType), t.AccountID,
			t.Date.Format(time.RFC3339Nano), formatBS(t.DateBS), t.Particulars,
			t.Debit.String(), t.Credit.String(),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *Store) TransactionsByAccount(ctx context.Context, accountID string) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, voucher_id, voucher_no, voucher_type, account_id,
			date, date_bs, particulars, debit, credit
		FROM transactions WHERE account_id = ? ORDER BY seq`, accountID)
}

func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, voucher_id, voucher_no, voucher_type, account_id,
			date, date_bs, particulars, debit, credit
		FROM transactions ORDER BY seq`)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}

func scanTransaction(rows *sql.Rows) (*ledger.Transaction, error) {
	var t ledger.Transaction
	var date, dateBS, debit, credit string
	err := rows.Scan(&t.ID, &t.VoucherID, &t.VoucherNo, (*string)(&t.VoucherType), &t.AccountID,
		&date, &dateBS, &t.Particulars, &debit, &credit)
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	t.Date, _ = time.Parse(time.RFC3339Nano, date)
	t.DateBS = parseBS(dateBS)
	if t.Debit, err = decimal.NewFromString(debit); err != nil {
		return nil, fmt.Errorf("debit %q: %w", debit, err)
	}
	if t.Credit, err = decimal.NewFromString(credit); err != nil {
		return nil, fmt.Errorf("credit %q: %w", credit, err)
	}
	return &t, nil
}
