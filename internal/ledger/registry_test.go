package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-dev/khata/internal/ledger"
	"github.com/khata-dev/khata/internal/memstore"
)

func newRegistry(t *testing.T) (*ledger.Registry, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	return ledger.NewRegistry(st), st
}

func TestCreateAccount(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	acct, err := r.CreateAccount(ctx, ledger.CreateAccountInput{
		Type:           ledger.TypeAsset,
		Name:           "Petty Cash",
		Code:           "1101",
		OpeningBalance: decimal.RequireFromString("500.00"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "1101", acct.Code)
	assert.Equal(t, ledger.TypeAsset, acct.Type)
	assert.False(t, acct.Disabled)
	assert.False(t, acct.CreatedAt.IsZero())
}

func TestCreateAccount_Validation(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: "Banana", Name: "X"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAccountType)

	_, err = r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "   "})
	assert.ErrorIs(t, err, ledger.ErrEmptyAccountName)
}

func TestCreateAccount_DuplicateCode(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "A", Code: "1101"})
	require.NoError(t, err)
	_, err = r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeExpense, Name: "B", Code: "1101"})
	assert.ErrorIs(t, err, ledger.ErrDuplicateCode)
}

func TestCreateAccount_GeneratedCodes(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	a, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "1011", a.Code)

	// Counter is shared across types, so the suffix keeps advancing.
	b, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeExpense, Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, "5012", b.Code)
}

func TestCreateAccount_GeneratedCodeSkipsOccupied(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Taken", Code: "1011"})
	require.NoError(t, err)

	a, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "1012", a.Code)
}

func TestUpdateAccount(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	acct, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Old Name", Code: "1101"})
	require.NoError(t, err)

	newName := "New Name"
	opening := decimal.RequireFromString("250.00")
	updated, err := r.UpdateAccount(ctx, acct.ID, ledger.AccountUpdate{Name: &newName, OpeningBalance: &opening})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, updated.OpeningBalance.Equal(opening))
	// Code and type are untouched.
	assert.Equal(t, "1101", updated.Code)
	assert.Equal(t, ledger.TypeAsset, updated.Type)

	empty := "  "
	_, err = r.UpdateAccount(ctx, acct.ID, ledger.AccountUpdate{Name: &empty})
	assert.ErrorIs(t, err, ledger.ErrEmptyAccountName)

	_, err = r.UpdateAccount(ctx, "no-such-id", ledger.AccountUpdate{Name: &newName})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestDisableEnableAccount(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	acct, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash", Code: "1101"})
	require.NoError(t, err)

	disabled, err := r.DisableAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, disabled.Disabled)

	active, err := r.Accounts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := r.Accounts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	enabled, err := r.EnableAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.False(t, enabled.Disabled)
}

func TestAccountsByType(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash", Code: "1101"})
	require.NoError(t, err)
	_, err = r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeIncome, Name: "Sales", Code: "4101"})
	require.NoError(t, err)

	assets, err := r.AccountsByType(ctx, ledger.TypeAsset)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Cash", assets[0].Name)
}

func TestAccountByCode(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	created, err := r.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash", Code: "1101"})
	require.NoError(t, err)

	found, err := r.AccountByCode(ctx, "1101")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// Absent code is nil, nil: absence is not an error here.
	missing, err := r.AccountByCode(ctx, "9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSeedDefaults(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.SeedDefaults(ctx))

	accounts, err := r.Accounts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, accounts, 27)

	byType := map[ledger.AccountType]int{}
	for _, a := range accounts {
		byType[a.Type]++
		assert.True(t, a.OpeningBalance.IsZero())
	}
	assert.Equal(t, 6, byType[ledger.TypeAsset])
	assert.Equal(t, 4, byType[ledger.TypeLiability])
	assert.Equal(t, 3, byType[ledger.TypeEquity])
	assert.Equal(t, 4, byType[ledger.TypeIncome])
	assert.Equal(t, 10, byType[ledger.TypeExpense])

	// Re-seeding a non-empty registry is a no-op.
	require.NoError(t, r.SeedDefaults(ctx))
	accounts, err = r.Accounts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, accounts, 27)
}
