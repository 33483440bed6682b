package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
)

// VoucherType distinguishes the kinds of vouchers the engine posts.
type VoucherType string

const (
	TypeJournal  VoucherType = "JV"
	TypePayment  VoucherType = "PV"
	TypeReceipt  VoucherType = "RV"
	TypeContra   VoucherType = "CV"
	TypeSales    VoucherType = "SI"
	TypePurchase VoucherType = "PI"
)

// SequencedVoucherTypes are the types that receive per-fiscal-year sequence
// numbers from the voucher manager. Every type CreateVoucher accepts must be
// listed here, or its numbering starts from the map zero value.
var SequencedVoucherTypes = []VoucherType{TypeJournal, TypePayment, TypeReceipt, TypeContra, TypeSales, TypePurchase}

// ValidVoucherType checks membership in the voucher type enum.
func ValidVoucherType(t VoucherType) bool {
	switch t {
	case TypeJournal, TypePayment, TypeReceipt, TypeContra, TypeSales, TypePurchase:
		return true
	}
	return false
}

// Entry is one side of a voucher: exactly one of Debit or Credit is
// positive. Use NewDebit/NewCredit to construct valid entries.
type Entry struct {
	AccountID   string          `json:"account_id"`
	Particulars string          `json:"particulars,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// NewDebit builds a debit-side entry.
func NewDebit(accountID string, amount decimal.Decimal, particulars string) Entry {
	return Entry{AccountID: accountID, Debit: amount, Particulars: particulars}
}

// NewCredit builds a credit-side entry.
func NewCredit(accountID string, amount decimal.Decimal, particulars string) Entry {
	return Entry{AccountID: accountID, Credit: amount, Particulars: particulars}
}

// Validate enforces the entry shape: a named account, non-negative amounts
// and exactly one positive side.
func (e Entry) Validate() error {
	if e.AccountID == "" {
		return fmt.Errorf("%w: missing account", ErrMalformedEntry)
	}
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Debit.IsPositive() == e.Credit.IsPositive() {
		return ErrMalformedEntry
	}
	return nil
}

// Voucher is a user-authored balanced entry set representing one business
// event. Vouchers are immutable once posted. Sales (SI) and purchase (PI)
// invoices additionally carry the party and VAT pass-through fields read by
// the VAT report.
type Voucher struct {
	ID        string      `json:"id"`
	VoucherNo string      `json:"voucher_no"`
	Type      VoucherType `json:"type"`
	Date      time.Time   `json:"date"`
	DateBS    bsdate.Date `json:"date_bs"`
	Narration string      `json:"narration"`
	Entries   []Entry     `json:"entries"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	Party     string          `json:"party,omitempty"`
	PartyPAN  string          `json:"party_pan,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal,omitempty"`
	VATAmount decimal.Decimal `json:"vat_amount,omitempty"`
	Total     decimal.Decimal `json:"total,omitempty"`
}

// StatusPosted is the only voucher status the engine produces; there is no
// amend or reverse operation.
const StatusPosted = "Posted"

// FormatVoucherNo builds the derived voucher number key:
// {TYPE}-{fiscal year with / replaced by -}-{sequence zero-padded to 4}.
func FormatVoucherNo(t VoucherType, fiscalYear string, sequence int) string {
	fy := strings.ReplaceAll(fiscalYear, "/", "-")
	return fmt.Sprintf("%s-%s-%04d", t, fy, sequence)
}

// voucherNoSequence extracts the trailing sequence from a voucher number.
func voucherNoSequence(voucherNo string) (int, bool) {
	parts := strings.Split(voucherNo, "-")
	if len(parts) < 2 {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, false
	}
	return seq, true
}

// Transaction is one persisted debit-only or credit-only ledger line derived
// from a voucher entry. Transactions are append-only; running balances are
// computed on read, never stored.
type Transaction struct {
	ID          string          `json:"id"`
	VoucherID   string          `json:"voucher_id"`
	VoucherNo   string          `json:"voucher_no"`
	VoucherType VoucherType     `json:"voucher_type"`
	AccountID   string          `json:"account_id"`
	Date        time.Time       `json:"date"`
	DateBS      bsdate.Date     `json:"date_bs"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
