package memstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-dev/khata/internal/ledger"
)

func TestCallersCannotMutateStoredState(t *testing.T) {
	st := New()
	ctx := context.Background()

	a := &ledger.Account{ID: "a1", Code: "1001", Name: "Cash", Type: ledger.TypeAsset}
	require.NoError(t, st.SaveAccount(ctx, a))

	// Mutating the argument after save changes nothing.
	a.Name = "Mutated"
	got, err := st.GetAccount(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Cash", got.Name)

	// Mutating a returned record changes nothing either.
	got.Name = "Also mutated"
	again, err := st.GetAccount(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Cash", again.Name)
}

func TestVoucherEntriesCopied(t *testing.T) {
	st := New()
	ctx := context.Background()

	v := &ledger.Voucher{
		ID:        "v1",
		VoucherNo: "JV-2080-81-0001",
		Type:      ledger.TypeJournal,
		Narration: "Entry",
		Entries: []ledger.Entry{
			ledger.NewDebit("a1", decimal.RequireFromString("10.00"), ""),
			ledger.NewCredit("a2", decimal.RequireFromString("10.00"), ""),
		},
	}
	require.NoError(t, st.SaveVoucher(ctx, v))

	v.Entries[0].AccountID = "tampered"
	got, err := st.GetVoucher(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.Entries[0].AccountID)
}

func TestNotFoundErrors(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, err := st.GetAccount(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = st.GetVoucher(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrVoucherNotFound)
}

func TestTransactionsPreserveInsertionOrder(t *testing.T) {
	st := New()
	ctx := context.Background()

	batch := []ledger.Transaction{
		{ID: "t1", AccountID: "a1", Particulars: "first"},
		{ID: "t2", AccountID: "a1", Particulars: "second"},
		{ID: "t3", AccountID: "a2", Particulars: "third"},
	}
	require.NoError(t, st.SaveTransactions(ctx, batch))

	txns, err := st.TransactionsByAccount(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "first", txns[0].Particulars)
	assert.Equal(t, "second", txns[1].Particulars)
}
