package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
)

// LedgerLine is a transaction annotated with the running balance after it.
type LedgerLine struct {
	Transaction
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceRow reports one account's balance split into the debit or
// credit column by its normal-balance side.
type TrialBalanceRow struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// ReportLine is one account's contribution to a P&L or balance-sheet
// section.
type ReportLine struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLoss is the income statement over a date window. Accounts with
// zero net activity are excluded from the line lists.
type ProfitAndLoss struct {
	Income        []ReportLine    `json:"income"`
	Expenses      []ReportLine    `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// BalanceSheet lists assets, liabilities and equity as of a date. Line
// amounts are absolute values (the section implies the sign); section totals
// keep the signed balance.
type BalanceSheet struct {
	Assets           []ReportLine    `json:"assets"`
	Liabilities      []ReportLine    `json:"liabilities"`
	Equity           []ReportLine    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// BookAccount is one account's full ledger inside a cash or bank book.
type BookAccount struct {
	AccountCode  string       `json:"account_code"`
	AccountName  string       `json:"account_name"`
	Transactions []LedgerLine `json:"transactions"`
}

// VATRow is one invoice voucher's contribution to the VAT report.
type VATRow struct {
	Date          bsdate.Date     `json:"date"`
	VoucherNo     string          `json:"voucher_no"`
	Party         string          `json:"party"`
	PANVAT        string          `json:"pan_vat"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// VATReport accumulates sales (SI) and purchase (PI) invoice VAT over a
// date window.
type VATReport struct {
	SalesVAT         []VATRow        `json:"sales_vat"`
	PurchaseVAT      []VATRow        `json:"purchase_vat"`
	TotalSalesVAT    decimal.Decimal `json:"total_sales_vat"`
	TotalPurchaseVAT decimal.Decimal `json:"total_purchase_vat"`
	NetVAT           decimal.Decimal `json:"net_vat"`
}
