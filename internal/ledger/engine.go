package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
)

// Engine validates and posts balanced journal entries and derives every
// report by replaying the append-only transaction log. It performs no
// logging; errors surface to the caller.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// PostJournalEntry expands a voucher into one transaction per nonzero entry
// side and persists them as a single atomic batch. An entry carrying both a
// debit and a credit produces two transactions; the expansion never nets.
// Balances are not computed here.
func (e *Engine) PostJournalEntry(ctx context.Context, v *Voucher) ([]Transaction, error) {
	var txns []Transaction
	for _, entry := range v.Entries {
		particulars := entry.Particulars
		if particulars == "" {
			particulars = v.Narration
		}
		if entry.Debit.IsPositive() {
			txns = append(txns, Transaction{
				ID:          uuid.Must(uuid.NewV7()).String(),
				VoucherID:   v.ID,
				VoucherNo:   v.VoucherNo,
				VoucherType: v.Type,
				AccountID:   entry.AccountID,
				Date:        v.Date,
				DateBS:      v.DateBS,
				Particulars: particulars,
				Debit:       entry.Debit,
				Credit:      decimal.Zero,
			})
		}
		if entry.Credit.IsPositive() {
			txns = append(txns, Transaction{
				ID:          uuid.Must(uuid.NewV7()).String(),
				VoucherID:   v.ID,
				VoucherNo:   v.VoucherNo,
				VoucherType: v.Type,
				AccountID:   entry.AccountID,
				Date:        v.Date,
				DateBS:      v.DateBS,
				Particulars: particulars,
				Debit:       decimal.Zero,
				Credit:      entry.Credit,
			})
		}
	}
	if err := e.store.SaveTransactions(ctx, txns); err != nil {
		return nil, fmt.Errorf("post journal entry: %w", err)
	}
	return txns, nil
}

// fold applies one transaction to a balance under the normal-balance sign
// convention.
func fold(t AccountType, balance decimal.Decimal, txn Transaction) decimal.Decimal {
	if t.DebitNormal() {
		return balance.Add(txn.Debit).Sub(txn.Credit)
	}
	return balance.Add(txn.Credit).Sub(txn.Debit)
}

// AccountBalance replays all of an account's transactions over its opening
// balance. Transactions dated after upTo are excluded when upTo is set.
// Unknown accounts fail with ErrAccountNotFound.
func (e *Engine) AccountBalance(ctx context.Context, accountID string, upTo *time.Time) (decimal.Decimal, error) {
	account, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := e.store.TransactionsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.OpeningBalance
	for _, txn := range txns {
		if upTo != nil && txn.Date.After(*upTo) {
			continue
		}
		balance = fold(account.Type, balance, txn)
	}
	return balance, nil
}

// AccountLedger returns the account's transactions in the date range sorted
// ascending by date, each annotated with the running balance after it.
// Same-date transactions keep their insertion order.
func (e *Engine) AccountLedger(ctx context.Context, accountID string, from, to *time.Time) ([]LedgerLine, error) {
	account, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	txns, err := e.store.TransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filtered := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if from != nil && txn.Date.Before(*from) {
			continue
		}
		if to != nil && txn.Date.After(*to) {
			continue
		}
		filtered = append(filtered, txn)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	balance := account.OpeningBalance
	lines := make([]LedgerLine, 0, len(filtered))
	for _, txn := range filtered {
		balance = fold(account.Type, balance, txn)
		lines = append(lines, LedgerLine{Transaction: txn, Balance: balance})
	}
	return lines, nil
}

// TrialBalance reports every non-disabled account's balance as of a date,
// sorted by code (lexicographic). A non-negative balance lands in the debit
// column for debit-normal types and the credit column for credit-normal
// types; a negative balance lands in neither column. That asymmetry is
// long-standing reporting behavior and is pinned by tests; do not "fix" it
// without product sign-off.
func (e *Engine) TrialBalance(ctx context.Context, asOf *time.Time) ([]TrialBalanceRow, error) {
	accounts, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		if account.Disabled {
			continue
		}
		balance, err := e.AccountBalance(ctx, account.ID, asOf)
		if err != nil {
			return nil, err
		}
		row := TrialBalanceRow{
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.Type,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Balance:     balance,
		}
		if !balance.IsNegative() {
			if account.Type.DebitNormal() {
				row.Debit = balance
			} else {
				row.Credit = balance
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AccountCode < rows[j].AccountCode
	})
	return rows, nil
}

// ProfitAndLoss accumulates income and expense activity strictly within
// [from, to]. Accounts with zero net activity are left off the line lists.
func (e *Engine) ProfitAndLoss(ctx context.Context, from, to time.Time) (*ProfitAndLoss, error) {
	accounts, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	pl := &ProfitAndLoss{
		Income:        []ReportLine{},
		Expenses:      []ReportLine{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, account := range accounts {
		if account.Disabled {
			continue
		}
		if account.Type != TypeIncome && account.Type != TypeExpense {
			continue
		}
		txns, err := e.store.TransactionsByAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, txn := range txns {
			if txn.Date.Before(from) || txn.Date.After(to) {
				continue
			}
			total = fold(account.Type, total, txn)
		}
		if total.IsZero() {
			continue
		}
		line := ReportLine{AccountCode: account.Code, AccountName: account.Name, Amount: total}
		if account.Type == TypeIncome {
			pl.Income = append(pl.Income, line)
			pl.TotalIncome = pl.TotalIncome.Add(total)
		} else {
			pl.Expenses = append(pl.Expenses, line)
			pl.TotalExpenses = pl.TotalExpenses.Add(total)
		}
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpenses)
	return pl, nil
}

// BalanceSheet computes per-account balances as of a date. Zero-balance
// accounts are excluded; line amounts are absolute while section totals keep
// the sign.
func (e *Engine) BalanceSheet(ctx context.Context, asOf *time.Time) (*BalanceSheet, error) {
	accounts, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	bs := &BalanceSheet{
		Assets:           []ReportLine{},
		Liabilities:      []ReportLine{},
		Equity:           []ReportLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, account := range accounts {
		if account.Disabled {
			continue
		}
		balance, err := e.AccountBalance(ctx, account.ID, asOf)
		if err != nil {
			return nil, err
		}
		if balance.IsZero() {
			continue
		}
		line := ReportLine{AccountCode: account.Code, AccountName: account.Name, Amount: balance.Abs()}
		switch account.Type {
		case TypeAsset:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(balance)
		case TypeLiability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(balance)
		case TypeEquity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(balance)
		}
	}
	return bs, nil
}

// CashBook returns the full ledger of every active account whose name
// contains "cash".
func (e *Engine) CashBook(ctx context.Context, from, to *time.Time) ([]BookAccount, error) {
	return e.bookByName(ctx, "cash", from, to)
}

// BankBook returns the full ledger of every active account whose name
// contains "bank".
func (e *Engine) BankBook(ctx context.Context, from, to *time.Time) ([]BookAccount, error) {
	return e.bookByName(ctx, "bank", from, to)
}

func (e *Engine) bookByName(ctx context.Context, needle string, from, to *time.Time) ([]BookAccount, error) {
	accounts, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	book := []BookAccount{}
	for _, account := range accounts {
		if account.Disabled || !strings.Contains(strings.ToLower(account.Name), needle) {
			continue
		}
		lines, err := e.AccountLedger(ctx, account.ID, from, to)
		if err != nil {
			return nil, err
		}
		book = append(book, BookAccount{
			AccountCode:  account.Code,
			AccountName:  account.Name,
			Transactions: lines,
		})
	}
	return book, nil
}

// VATReport scans SI and PI vouchers carrying VAT in the date window. This
// reads vouchers, not transactions: the VAT fields are invoice pass-through
// data, not ledger lines.
func (e *Engine) VATReport(ctx context.Context, from, to time.Time) (*VATReport, error) {
	vouchers, err := e.store.ListVouchers(ctx)
	if err != nil {
		return nil, err
	}

	report := &VATReport{
		SalesVAT:         []VATRow{},
		PurchaseVAT:      []VATRow{},
		TotalSalesVAT:    decimal.Zero,
		TotalPurchaseVAT: decimal.Zero,
	}
	for _, v := range vouchers {
		if v.Date.Before(from) || v.Date.After(to) {
			continue
		}
		if !v.VATAmount.IsPositive() {
			continue
		}
		row := VATRow{
			Date:          v.DateBS,
			VoucherNo:     v.VoucherNo,
			Party:         v.Party,
			PANVAT:        v.PartyPAN,
			TaxableAmount: v.Subtotal,
			VATAmount:     v.VATAmount,
			TotalAmount:   v.Total,
		}
		switch v.Type {
		case TypeSales:
			report.SalesVAT = append(report.SalesVAT, row)
			report.TotalSalesVAT = report.TotalSalesVAT.Add(v.VATAmount)
		case TypePurchase:
			report.PurchaseVAT = append(report.PurchaseVAT, row)
			report.TotalPurchaseVAT = report.TotalPurchaseVAT.Add(v.VATAmount)
		}
	}
	report.NetVAT = report.TotalSalesVAT.Sub(report.TotalPurchaseVAT)
	return report, nil
}

// CloseFiscalYear computes the year's P&L and posts a single closing JV
// against the first "capital"-named account: a credit for net profit, a
// debit for the absolute net loss. A zero net posts nothing; a missing
// capital account fails with ErrNoCapitalAccount.
func (e *Engine) CloseFiscalYear(ctx context.Context, fiscalYear string) (decimal.Decimal, error) {
	from, to, err := bsdate.FiscalWindow(fiscalYear)
	if err != nil {
		return decimal.Zero, err
	}
	pl, err := e.ProfitAndLoss(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if pl.NetProfit.IsZero() {
		return pl.NetProfit, nil
	}

	capital, err := e.findCapitalAccount(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if capital == nil {
		return pl.NetProfit, ErrNoCapitalAccount
	}

	var entry Entry
	if pl.NetProfit.IsPositive() {
		entry = NewCredit(capital.ID, pl.NetProfit, "Net Profit")
	} else {
		entry = NewDebit(capital.ID, pl.NetProfit.Abs(), "Net Loss")
	}

	// The window end may fall outside the BS table; the closing voucher
	// then carries only the Gregorian date.
	dateBS, bsErr := bsdate.FromGregorian(to)
	if bsErr != nil {
		dateBS = bsdate.Date{}
	}

	closing := &Voucher{
		ID:        uuid.Must(uuid.NewV7()).String(),
		VoucherNo: FormatVoucherNo(TypeJournal, fiscalYear, closingSequence),
		Type:      TypeJournal,
		Date:      to,
		DateBS:    dateBS,
		Narration: fmt.Sprintf("Profit/Loss transfer for FY %s", fiscalYear),
		Entries:   []Entry{entry},
		Status:    StatusPosted,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.SaveVoucher(ctx, closing); err != nil {
		return decimal.Zero, fmt.Errorf("save closing voucher: %w", err)
	}
	if _, err := e.PostJournalEntry(ctx, closing); err != nil {
		return decimal.Zero, err
	}
	return pl.NetProfit, nil
}

// closingSequence is the reserved voucher sequence for year-end closing
// entries, outside the range the voucher manager allocates.
const closingSequence = 9999

func (e *Engine) findCapitalAccount(ctx context.Context) (*Account, error) {
	accounts, err := e.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if strings.Contains(strings.ToLower(accounts[i].Name), "capital") {
			return &accounts[i], nil
		}
	}
	return nil, nil
}
