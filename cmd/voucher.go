package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

var voucherCmd = &cobra.Command{
	Use:     "voucher",
	Aliases: []string{"vch"},
	Short:   "Manage vouchers",
}

// voucher create
var (
	vchType      string
	vchDate      string
	vchDateBS    string
	vchNarration string
	vchDebits    []string // format: "account_id:amount[:particulars]"
	vchCredits   []string
	vchParty     string
	vchPartyPAN  string
	vchSubtotal  string
	vchVAT       string
	vchTotal     string
)

var voucherCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and post a voucher",
	Long: `Create a balanced voucher and post its transactions.
Each --debit/--credit is formatted as "account_id:amount" with an optional
third ":particulars" segment. Debits and credits must balance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		var entries []ledger.Entry
		for _, raw := range vchDebits {
			entry, err := parseEntryFlag(raw, true)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		for _, raw := range vchCredits {
			entry, err := parseEntryFlag(raw, false)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		req := client.CreateVoucherRequest{
			Type:      ledger.VoucherType(vchType),
			Date:      vchDate,
			DateBS:    vchDateBS,
			Narration: vchNarration,
			Entries:   entries,
			Party:     vchParty,
			PartyPAN:  vchPartyPAN,
		}
		var err error
		if req.Subtotal, err = parseOptionalDecimal(vchSubtotal); err != nil {
			return fmt.Errorf("invalid subtotal: %w", err)
		}
		if req.VATAmount, err = parseOptionalDecimal(vchVAT); err != nil {
			return fmt.Errorf("invalid vat: %w", err)
		}
		if req.Total, err = parseOptionalDecimal(vchTotal); err != nil {
			return fmt.Errorf("invalid total: %w", err)
		}

		created, err := c.CreateVoucher(context.Background(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Voucher posted: %s (%s)\n", created.VoucherNo, created.ID)
		fmt.Printf("Date: %s / BS %s\n", created.Date.Format("2006-01-02"), created.DateBS.String())
		fmt.Printf("Narration: %s\n", created.Narration)
		for _, e := range created.Entries {
			if e.Debit.IsPositive() {
				fmt.Printf("  DR %-38s %12s\n", e.AccountID, e.Debit.StringFixed(2))
			} else {
				fmt.Printf("  CR %-38s %12s\n", e.AccountID, e.Credit.StringFixed(2))
			}
		}
		return nil
	},
}

func parseEntryFlag(raw string, debit bool) (ledger.Entry, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return ledger.Entry{}, fmt.Errorf("invalid entry format %q, expected account_id:amount[:particulars]", raw)
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("invalid amount %q in entry %q: %w", parts[1], raw, err)
	}
	particulars := ""
	if len(parts) == 3 {
		particulars = parts[2]
	}
	if debit {
		return ledger.NewDebit(parts[0], amount, particulars), nil
	}
	return ledger.NewCredit(parts[0], amount, particulars), nil
}

func parseOptionalDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// voucher list
var voucherListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vouchers, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		vouchers, err := c.ListVouchers(context.Background())
		if err != nil {
			return err
		}

		if len(vouchers) == 0 {
			fmt.Println("No vouchers found.")
			return nil
		}

		fmt.Printf("%-18s %-4s %-12s %-12s %-8s %s\n", "VOUCHER NO", "TYPE", "DATE", "DATE (BS)", "ENTRIES", "NARRATION")
		for _, v := range vouchers {
			narration := v.Narration
			if len(narration) > 40 {
				narration = narration[:38] + ".."
			}
			fmt.Printf("%-18s %-4s %-12s %-12s %-8d %s\n",
				v.VoucherNo, v.Type, v.Date.Format("2006-01-02"), v.DateBS.String(),
				len(v.Entries), narration)
		}
		return nil
	},
}

// voucher get
var voucherGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get voucher details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		v, err := c.GetVoucher(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Voucher:   %s (%s)\n", v.VoucherNo, v.ID)
		fmt.Printf("Type:      %s\n", v.Type)
		fmt.Printf("Date:      %s / BS %s\n", v.Date.Format("2006-01-02"), v.DateBS.String())
		fmt.Printf("Narration: %s\n", v.Narration)
		fmt.Printf("Status:    %s\n", v.Status)
		if v.Party != "" {
			fmt.Printf("Party:     %s (PAN %s)\n", v.Party, v.PartyPAN)
			fmt.Printf("Subtotal:  %s  VAT: %s  Total: %s\n",
				v.Subtotal.StringFixed(2), v.VATAmount.StringFixed(2), v.Total.StringFixed(2))
		}
		fmt.Println("Entries:")
		for _, e := range v.Entries {
			if e.Debit.IsPositive() {
				fmt.Printf("  DR %-38s %12s  %s\n", e.AccountID, e.Debit.StringFixed(2), e.Particulars)
			} else {
				fmt.Printf("  CR %-38s %12s  %s\n", e.AccountID, e.Credit.StringFixed(2), e.Particulars)
			}
		}
		return nil
	},
}

// voucher validate
var (
	valDebits  []string
	valCredits []string
)

var voucherValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether an entry set balances, without posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		var entries []ledger.Entry
		for _, raw := range valDebits {
			entry, err := parseEntryFlag(raw, true)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		for _, raw := range valCredits {
			entry, err := parseEntryFlag(raw, false)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		result, err := c.ValidateEntries(context.Background(), entries)
		if err != nil {
			return err
		}

		fmt.Printf("Valid:        %v\n", result.IsValid)
		fmt.Printf("Total debit:  %s\n", result.TotalDebit.StringFixed(2))
		fmt.Printf("Total credit: %s\n", result.TotalCredit.StringFixed(2))
		fmt.Printf("Difference:   %s\n", result.Difference.StringFixed(2))
		return nil
	},
}

func init() {
	voucherCreateCmd.Flags().StringVar(&vchType, "type", "JV", "Voucher type (JV, PV, RV, CV, SI, PI)")
	voucherCreateCmd.Flags().StringVar(&vchDate, "date", "", "Gregorian date (YYYY-MM-DD, defaults to today)")
	voucherCreateCmd.Flags().StringVar(&vchDateBS, "date-bs", "", "Bikram Sambat date (YYYY/MM/DD, derived when omitted)")
	voucherCreateCmd.Flags().StringVar(&vchNarration, "narration", "", "Narration")
	voucherCreateCmd.Flags().StringArrayVar(&vchDebits, "debit", nil, "Debit entry account_id:amount[:particulars]")
	voucherCreateCmd.Flags().StringArrayVar(&vchCredits, "credit", nil, "Credit entry account_id:amount[:particulars]")
	voucherCreateCmd.Flags().StringVar(&vchParty, "party", "", "Invoice party name (SI/PI)")
	voucherCreateCmd.Flags().StringVar(&vchPartyPAN, "party-pan", "", "Invoice party PAN/VAT number (SI/PI)")
	voucherCreateCmd.Flags().StringVar(&vchSubtotal, "subtotal", "", "Invoice subtotal before VAT (SI/PI)")
	voucherCreateCmd.Flags().StringVar(&vchVAT, "vat", "", "Invoice VAT amount (SI/PI)")
	voucherCreateCmd.Flags().StringVar(&vchTotal, "total", "", "Invoice total including VAT (SI/PI)")
	voucherCreateCmd.MarkFlagRequired("narration")

	voucherValidateCmd.Flags().StringArrayVar(&valDebits, "debit", nil, "Debit entry account_id:amount")
	voucherValidateCmd.Flags().StringArrayVar(&valCredits, "credit", nil, "Credit entry account_id:amount")

	voucherCmd.AddCommand(voucherCreateCmd)
	voucherCmd.AddCommand(voucherListCmd)
	voucherCmd.AddCommand(voucherGetCmd)
	voucherCmd.AddCommand(voucherValidateCmd)

	rootCmd.AddCommand(voucherCmd)
}
