package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies ledger accounts. Assets and Expenses are
// debit-normal; Liabilities, Equity and Income are credit-normal.
type AccountType string

const (
	TypeAsset     AccountType = "Asset"
	TypeLiability AccountType = "Liability"
	TypeEquity    AccountType = "Equity"
	TypeIncome    AccountType = "Income"
	TypeExpense   AccountType = "Expense"
)

var AllAccountTypes = []AccountType{
	TypeAsset,
	TypeLiability,
	TypeEquity,
	TypeIncome,
	TypeExpense,
}

// ValidAccountType checks membership in the five-type enum.
func ValidAccountType(t AccountType) bool {
	for _, v := range AllAccountTypes {
		if v == t {
			return true
		}
	}
	return false
}

// CodePrefix returns the leading digit used when auto-generating codes for
// accounts of the given type.
func CodePrefix(t AccountType) string {
	switch t {
	case TypeAsset:
		return "1"
	case TypeLiability:
		return "2"
	case TypeEquity:
		return "3"
	case TypeIncome:
		return "4"
	case TypeExpense:
		return "5"
	default:
		return "9"
	}
}

// DebitNormal reports whether debits increase the balance of this type.
func (t AccountType) DebitNormal() bool {
	return t == TypeAsset || t == TypeExpense
}

// Account is a ledger bucket accumulating debits and credits. Code uniquely
// identifies an account; disabling is a soft delete and historical balances
// remain queryable.
type Account struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Disabled       bool            `json:"disabled"`
	CreatedAt      time.Time       `json:"created_at"`
}

// seedAccount is one row of the default chart.
type seedAccount struct {
	Type AccountType
	Name string
	Code string
}

// defaultChart is the chart of accounts installed on first run: 6 assets,
// 4 liabilities, 3 equity, 4 income and 10 expense accounts.
var defaultChart = []seedAccount{
	{TypeAsset, "Cash in Hand", "1001"},
	{TypeAsset, "Bank Account", "1002"},
	{TypeAsset, "Accounts Receivable", "1003"},
	{TypeAsset, "Inventory", "1004"},
	{TypeAsset, "Furniture & Fixtures", "1005"},
	{TypeAsset, "Equipment", "1006"},

	{TypeLiability, "Accounts Payable", "2001"},
	{TypeLiability, "Loan Payable", "2002"},
	{TypeLiability, "VAT Payable", "2003"},
	{TypeLiability, "Salary Payable", "2004"},

	{TypeEquity, "Capital", "3001"},
	{TypeEquity, "Retained Earnings", "3002"},
	{TypeEquity, "Drawings", "3003"},

	{TypeIncome, "Sales Revenue", "4001"},
	{TypeIncome, "Service Income", "4002"},
	{TypeIncome, "Interest Income", "4003"},
	{TypeIncome, "Other Income", "4004"},

	{TypeExpense, "Rent Expense", "5001"},
	{TypeExpense, "Salary Expense", "5002"},
	{TypeExpense, "Electricity Expense", "5003"},
	{TypeExpense, "Internet Expense", "5004"},
	{TypeExpense, "Transportation Expense", "5005"},
	{TypeExpense, "Office Supplies", "5006"},
	{TypeExpense, "Telephone Expense", "5007"},
	{TypeExpense, "Depreciation Expense", "5008"},
	{TypeExpense, "Bank Charges", "5009"},
	{TypeExpense, "Miscellaneous Expense", "5010"},
}
