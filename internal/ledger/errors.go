package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidVoucherType = errors.New("invalid voucher type")
	ErrEmptyAccountName   = errors.New("account name is required")
	ErrEmptyNarration     = errors.New("voucher narration is required")
	ErrDuplicateCode      = errors.New("account code already exists")
	ErrImmutableField     = errors.New("account code and type cannot change")
	ErrTooFewEntries      = errors.New("voucher must have at least 2 entries")
	ErrMalformedEntry     = errors.New("entry must have exactly one of debit or credit")
	ErrNegativeAmount     = errors.New("entry amounts cannot be negative")
	ErrAccountNotFound    = errors.New("account not found")
	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrNoCapitalAccount   = errors.New("no capital account to close into")
)

// UnbalancedEntryError reports a journal entry set whose debits and credits
// differ by more than the accepted tolerance. The totals are carried for
// caller display.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry not balanced: debit %s, credit %s, difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference.StringFixed(2))
}
