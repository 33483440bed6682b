package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the chart of accounts",
}

// account create
var (
	acctCreateType    string
	acctCreateName    string
	acctCreateCode    string
	acctCreateOpening string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		opening := decimal.Zero
		if acctCreateOpening != "" {
			parsed, err := decimal.NewFromString(acctCreateOpening)
			if err != nil {
				return fmt.Errorf("invalid opening balance: %w", err)
			}
			opening = parsed
		}

		created, err := c.CreateAccount(context.Background(), client.CreateAccountRequest{
			Type:           ledger.AccountType(acctCreateType),
			Name:           acctCreateName,
			Code:           acctCreateCode,
			OpeningBalance: opening,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Account created: %s %s (%s) opening %s\n",
			created.Code, created.Name, created.Type, created.OpeningBalance.StringFixed(2))
		return nil
	},
}

// account list
var (
	acctListType     string
	acctListDisabled bool
)

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		accounts, err := c.ListAccounts(context.Background(), acctListType, acctListDisabled)
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		fmt.Printf("%-6s %-30s %-10s %12s %s\n", "CODE", "NAME", "TYPE", "OPENING", "STATUS")
		for _, a := range accounts {
			name := a.Name
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			status := "active"
			if a.Disabled {
				status = "disabled"
			}
			fmt.Printf("%-6s %-30s %-10s %12s %s\n",
				a.Code, name, a.Type, a.OpeningBalance.StringFixed(2), status)
		}
		return nil
	},
}

// account get
var accountGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get account details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		acct, err := c.GetAccount(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %s\n", acct.ID)
		fmt.Printf("Code:     %s\n", acct.Code)
		fmt.Printf("Name:     %s\n", acct.Name)
		fmt.Printf("Type:     %s\n", acct.Type)
		fmt.Printf("Opening:  %s\n", acct.OpeningBalance.StringFixed(2))
		fmt.Printf("Disabled: %v\n", acct.Disabled)
		fmt.Printf("Created:  %s\n", acct.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

// account balance
var accountBalanceCmd = &cobra.Command{
	Use:   "balance [id]",
	Short: "Get account balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		bal, err := c.AccountBalance(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Account: %s\n", bal.AccountID)
		fmt.Printf("Balance: %s\n", bal.Balance.StringFixed(2))
		return nil
	},
}

// account ledger
var (
	acctLedgerFrom string
	acctLedgerTo   string
)

var accountLedgerCmd = &cobra.Command{
	Use:   "ledger [id]",
	Short: "Show an account's ledger with running balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		lines, err := c.AccountLedger(context.Background(), args[0], acctLedgerFrom, acctLedgerTo)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		fmt.Printf("%-12s %-12s %-14s %12s %12s %12s\n",
			"DATE", "DATE (BS)", "VOUCHER", "DEBIT", "CREDIT", "BALANCE")
		for _, l := range lines {
			fmt.Printf("%-12s %-12s %-14s %12s %12s %12s\n",
				l.Date.Format("2006-01-02"), l.DateBS.String(), l.VoucherNo,
				l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Balance.StringFixed(2))
		}
		return nil
	},
}

// account disable / enable
var accountDisableCmd = &cobra.Command{
	Use:   "disable [id]",
	Short: "Disable an account (soft delete)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		acct, err := c.DisableAccount(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Account %s %s disabled\n", acct.Code, acct.Name)
		return nil
	},
}

var accountEnableCmd = &cobra.Command{
	Use:   "enable [id]",
	Short: "Re-enable a disabled account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		acct, err := c.EnableAccount(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Account %s %s enabled\n", acct.Code, acct.Name)
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Account type (Asset, Liability, Equity, Income, Expense)")
	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateCode, "code", "", "Account code (auto-generated when omitted)")
	accountCreateCmd.Flags().StringVar(&acctCreateOpening, "opening", "", "Opening balance")
	accountCreateCmd.MarkFlagRequired("type")
	accountCreateCmd.MarkFlagRequired("name")

	accountListCmd.Flags().StringVar(&acctListType, "type", "", "Filter by account type")
	accountListCmd.Flags().BoolVar(&acctListDisabled, "all", false, "Include disabled accounts")

	accountLedgerCmd.Flags().StringVar(&acctLedgerFrom, "from", "", "Start date (YYYY-MM-DD)")
	accountLedgerCmd.Flags().StringVar(&acctLedgerTo, "to", "", "End date (YYYY-MM-DD)")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountGetCmd)
	accountCmd.AddCommand(accountBalanceCmd)
	accountCmd.AddCommand(accountLedgerCmd)
	accountCmd.AddCommand(accountDisableCmd)
	accountCmd.AddCommand(accountEnableCmd)

	rootCmd.AddCommand(accountCmd)
}
