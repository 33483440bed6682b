package ledger

import "github.com/shopspring/decimal"

// balanceTolerance absorbs floating-point addition error from callers that
// computed amounts in binary floating point, not genuine imbalance. The
// comparison is strictly-less-than, never exact equality.
var balanceTolerance = decimal.RequireFromString("0.01")

// ValidationResult is the outcome of checking a candidate entry set.
type ValidationResult struct {
	IsValid     bool            `json:"is_valid"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Difference  decimal.Decimal `json:"difference"`
}

// ValidateJournalEntry sums debits and credits across the entry set and
// accepts it when they differ by less than the tolerance.
func ValidateJournalEntry(entries []Entry) ValidationResult {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	difference := totalDebit.Sub(totalCredit).Abs()
	return ValidationResult{
		IsValid:     difference.LessThan(balanceTolerance),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  difference,
	}
}

// Err converts an invalid result into an UnbalancedEntryError, or nil when
// the set balances.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return &UnbalancedEntryError{
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		Difference:  r.Difference,
	}
}
