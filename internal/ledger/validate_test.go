package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateJournalEntry_Balanced(t *testing.T) {
	entries := []Entry{
		NewDebit("a1", dec("100.00"), ""),
		NewCredit("a2", dec("100.00"), ""),
	}
	result := ValidateJournalEntry(entries)
	assert.True(t, result.IsValid)
	assert.True(t, result.Difference.IsZero())
	assert.NoError(t, result.Err())
}

func TestValidateJournalEntry_Unbalanced(t *testing.T) {
	entries := []Entry{
		NewDebit("a1", dec("100.00"), ""),
		NewCredit("a2", dec("99.00"), ""),
	}
	result := ValidateJournalEntry(entries)
	assert.False(t, result.IsValid)
	assert.True(t, result.Difference.Equal(dec("1.00")))

	err := result.Err()
	require.Error(t, err)
	var unbalanced *UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.TotalDebit.Equal(dec("100.00")))
	assert.True(t, unbalanced.TotalCredit.Equal(dec("99.00")))
}

func TestValidateJournalEntry_ToleranceAbsorbsSubCentDrift(t *testing.T) {
	// 0.005 difference is under the 0.01 tolerance.
	entries := []Entry{
		NewDebit("a1", dec("33.335"), ""),
		NewCredit("a2", dec("33.33"), ""),
	}
	assert.True(t, ValidateJournalEntry(entries).IsValid)
}

func TestValidateJournalEntry_ExactlyAtToleranceRejected(t *testing.T) {
	// The comparison is strictly less than 0.01.
	entries := []Entry{
		NewDebit("a1", dec("100.01"), ""),
		NewCredit("a2", dec("100.00"), ""),
	}
	assert.False(t, ValidateJournalEntry(entries).IsValid)
}

func TestValidateJournalEntry_MultiLeg(t *testing.T) {
	entries := []Entry{
		NewDebit("a1", dec("60.00"), ""),
		NewDebit("a2", dec("40.00"), ""),
		NewCredit("a3", dec("100.00"), ""),
	}
	result := ValidateJournalEntry(entries)
	assert.True(t, result.IsValid)
	assert.True(t, result.TotalDebit.Equal(dec("100.00")))
}

func TestValidateJournalEntry_Empty(t *testing.T) {
	result := ValidateJournalEntry(nil)
	// Zero debits equal zero credits; the minimum-entry rule lives in the
	// voucher service, not here.
	assert.True(t, result.IsValid)
}

func TestEntryValidate(t *testing.T) {
	assert.NoError(t, NewDebit("a1", dec("10"), "").Validate())
	assert.NoError(t, NewCredit("a1", dec("10"), "").Validate())

	assert.ErrorIs(t, Entry{AccountID: "", Debit: dec("10")}.Validate(), ErrMalformedEntry)
	assert.ErrorIs(t, Entry{AccountID: "a1", Debit: dec("-5")}.Validate(), ErrNegativeAmount)
	assert.ErrorIs(t, Entry{AccountID: "a1"}.Validate(), ErrMalformedEntry)
	assert.ErrorIs(t, Entry{AccountID: "a1", Debit: dec("5"), Credit: dec("5")}.Validate(), ErrMalformedEntry)
}
