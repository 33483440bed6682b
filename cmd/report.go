package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Financial reports",
}

var (
	reportFrom string
	reportTo   string
)

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Trial balance across all active accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		rows, err := c.TrialBalance(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-30s %-10s %14s %14s\n", "CODE", "ACCOUNT", "TYPE", "DEBIT", "CREDIT")
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, row := range rows {
			fmt.Printf("%-6s %-30s %-10s %14s %14s\n",
				row.AccountCode, trim(row.AccountName, 28), row.AccountType,
				row.Debit.StringFixed(2), row.Credit.StringFixed(2))
			totalDebit = totalDebit.Add(row.Debit)
			totalCredit = totalCredit.Add(row.Credit)
		}
		fmt.Printf("%-6s %-30s %-10s %14s %14s\n", "", "TOTAL", "",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2))
		return nil
	},
}

var profitLossCmd = &cobra.Command{
	Use:   "profit-loss",
	Short: "Profit and loss statement over a date window",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		pl, err := c.ProfitAndLoss(context.Background(), reportFrom, reportTo)
		if err != nil {
			return err
		}

		fmt.Println("INCOME")
		for _, line := range pl.Income {
			fmt.Printf("  %-6s %-30s %14s\n", line.AccountCode, trim(line.AccountName, 28), line.Amount.StringFixed(2))
		}
		fmt.Printf("  %-37s %14s\n", "Total income", pl.TotalIncome.StringFixed(2))
		fmt.Println("EXPENSES")
		for _, line := range pl.Expenses {
			fmt.Printf("  %-6s %-30s %14s\n", line.AccountCode, trim(line.AccountName, 28), line.Amount.StringFixed(2))
		}
		fmt.Printf("  %-37s %14s\n", "Total expenses", pl.TotalExpenses.StringFixed(2))
		fmt.Printf("NET PROFIT %41s\n", pl.NetProfit.StringFixed(2))
		return nil
	},
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Balance sheet as of today",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		bs, err := c.BalanceSheet(context.Background())
		if err != nil {
			return err
		}

		printSection := func(title string, lines []ledger.ReportLine, total string) {
			fmt.Println(title)
			for _, line := range lines {
				fmt.Printf("  %-6s %-30s %14s\n", line.AccountCode, trim(line.AccountName, 28), line.Amount.StringFixed(2))
			}
			fmt.Printf("  %-37s %14s\n", "Total", total)
		}
		printSection("ASSETS", bs.Assets, bs.TotalAssets.StringFixed(2))
		printSection("LIABILITIES", bs.Liabilities, bs.TotalLiabilities.StringFixed(2))
		printSection("EQUITY", bs.Equity, bs.TotalEquity.StringFixed(2))
		return nil
	},
}

var cashBookCmd = &cobra.Command{
	Use:   "cash-book",
	Short: "Ledger of every cash account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBook(client.New(flagServer).CashBook)
	},
}

var bankBookCmd = &cobra.Command{
	Use:   "bank-book",
	Short: "Ledger of every bank account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBook(client.New(flagServer).BankBook)
	},
}

func runBook(fetch func(ctx context.Context, from, to string) ([]ledger.BookAccount, error)) error {
	books, err := fetch(context.Background(), reportFrom, reportTo)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No matching accounts.")
		return nil
	}
	for _, book := range books {
		fmt.Printf("%s %s\n", book.AccountCode, book.AccountName)
		for _, l := range book.Transactions {
			fmt.Printf("  %-12s %-14s %12s %12s %12s\n",
				l.Date.Format("2006-01-02"), l.VoucherNo,
				l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Balance.StringFixed(2))
		}
	}
	return nil
}

var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "VAT summary from sales and purchase invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		report, err := c.VATReport(context.Background(), reportFrom, reportTo)
		if err != nil {
			return err
		}

		printRows := func(title string, rows []ledger.VATRow) {
			fmt.Println(title)
			for _, row := range rows {
				fmt.Printf("  %-12s %-18s %-24s %12s %12s\n",
					row.Date.String(), row.VoucherNo, trim(row.Party, 22),
					row.TaxableAmount.StringFixed(2), row.VATAmount.StringFixed(2))
			}
		}
		printRows("SALES VAT", report.SalesVAT)
		printRows("PURCHASE VAT", report.PurchaseVAT)
		fmt.Printf("Total sales VAT:    %s\n", report.TotalSalesVAT.StringFixed(2))
		fmt.Printf("Total purchase VAT: %s\n", report.TotalPurchaseVAT.StringFixed(2))
		fmt.Printf("Net VAT payable:    %s\n", report.NetVAT.StringFixed(2))
		return nil
	},
}

func trim(s string, n int) string {
	if len(s) > n {
		return s[:n] + ".."
	}
	return s
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportFrom, "from", "", "Start date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportTo, "to", "", "End date (YYYY-MM-DD)")

	reportCmd.AddCommand(trialBalanceCmd)
	reportCmd.AddCommand(profitLossCmd)
	reportCmd.AddCommand(balanceSheetCmd)
	reportCmd.AddCommand(cashBookCmd)
	reportCmd.AddCommand(bankBookCmd)
	reportCmd.AddCommand(vatCmd)

	rootCmd.AddCommand(reportCmd)
}
