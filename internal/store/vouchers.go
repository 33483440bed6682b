package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
	"github.com/khata-dev/khata/internal/ledger"
)

// SaveVoucher writes the voucher header and its entries in one sql
// transaction. Saving an existing id replaces the header and entry set.
func (s *Store) SaveVoucher(ctx context.Context, v *ledger.Voucher) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vouchers (id, voucher_no, type, date, date_bs, narration, status,
			party, party_pan, subtotal, vat_amount, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			voucher_no = excluded.voucher_no,
			narration = excluded.narration,
			status = excluded.status`,
		v.ID, v.VoucherNo, string(v.Type), v.Date.Format(time.RFC3339Nano), formatBS(v.DateBS),
		v.Narration, v.Status, v.Party, v.PartyPAN,
		v.Subtotal.String(), v.VATAmount.String(), v.Total.String(),
		v.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert voucher: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM voucher_entries WHERE voucher_id = ?`, v.ID); err != nil {
		return fmt.Errorf("clear voucher entries: %w", err)
	}
	for i, e := range v.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO voucher_entries (voucher_id, account_id, particulars, debit, credit)
			VALUES (?, ?, ?, ?, ?)`,
			v.ID, e.AccountID, e.Particulars, e.Debit.String(), e.Credit.String(),
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetVoucher(ctx context.Context, id string) (*ledger.Voucher, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, voucher_no, type, date, date_bs, narration, status,
			party, party_pan, subtotal, vat_amount, total, created_at
		FROM vouchers WHERE id = ?`, id)

	v, err := scanVoucher(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrVoucherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}

	entries, err := s.voucherEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Entries = entries
	return v, nil
}

func (s *Store) ListVouchers(ctx context.Context) ([]ledger.Voucher, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, voucher_no, type, date, date_bs, narration, status,
			party, party_pan, subtotal, vat_amount, total, created_at
		FROM vouchers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []ledger.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range vouchers {
		entries, err := s.voucherEntries(ctx, vouchers[i].ID)
		if err != nil {
			return nil, err
		}
		vouchers[i].Entries = entries
	}
	return vouchers, nil
}

func (s *Store) voucherEntries(ctx context.Context, voucherID string) ([]ledger.Entry, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT account_id, particulars, debit, credit
		FROM voucher_entries WHERE voucher_id = ? ORDER BY id`, voucherID)
	if err != nil {
		return nil, fmt.Errorf("voucher entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		var debit, credit string
		if err := rows.Scan(&e.AccountID, &e.Particulars, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("entry debit %q: %w", debit, err)
		}
		if e.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("entry credit %q: %w", credit, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanVoucher(scan func(...any) error) (*ledger.Voucher, error) {
	var v ledger.Voucher
	var date, dateBS, subtotal, vatAmount, total, createdAt string
	err := scan(&v.ID, &v.VoucherNo, (*string)(&v.Type), &date, &dateBS, &v.Narration, &v.Status,
		&v.Party, &v.PartyPAN, &subtotal, &vatAmount, &total, &createdAt)
	if err != nil {
		return nil, err
	}
	v.Date, _ = time.Parse(time.RFC3339Nano, date)
	v.DateBS = parseBS(dateBS)
	if v.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("subtotal %q: %w", subtotal, err)
	}
	if v.VATAmount, err = decimal.NewFromString(vatAmount); err != nil {
		return nil, fmt.Errorf("vat amount %q: %w", vatAmount, err)
	}
	if v.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("total %q: %w", total, err)
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &v, nil
}

func formatBS(d bsdate.Date) string {
	if d == (bsdate.Date{}) {
		return ""
	}
	return d.String()
}

func parseBS(s string) bsdate.Date {
	if s == "" {
		return bsdate.Date{}
	}
	d, err := bsdate.Parse(s)
	if err != nil {
		return bsdate.Date{}
	}
	return d
}
