package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/bsdate"
)

// Date conversion runs locally; no server round trip needed.
var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Bikram Sambat date utilities",
}

var dateToBSCmd = &cobra.Command{
	Use:   "to-bs [YYYY-MM-DD]",
	Short: "Convert a Gregorian date to Bikram Sambat",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ad := time.Now().UTC()
		if len(args) == 1 {
			parsed, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			ad = parsed
		}
		bs, err := bsdate.FromGregorian(ad)
		if err != nil {
			return err
		}
		fmt.Printf("%s = BS %s (%s %d, %d)\n",
			ad.Format("2006-01-02"), bs.String(), bs.MonthName(), bs.Day, bs.Year)
		fmt.Printf("Fiscal year: %s\n", bs.FiscalYear())
		return nil
	},
}

var dateToADCmd = &cobra.Command{
	Use:   "to-ad [YYYY/MM/DD]",
	Short: "Convert a Bikram Sambat date to Gregorian",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bs, err := bsdate.Parse(args[0])
		if err != nil {
			return err
		}
		ad, err := bs.Gregorian()
		if err != nil {
			return err
		}
		fmt.Printf("BS %s = %s\n", bs.String(), ad.Format("2006-01-02"))
		return nil
	},
}

var dateTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's Bikram Sambat date",
	RunE: func(cmd *cobra.Command, args []string) error {
		bs, err := bsdate.Today()
		if err != nil {
			return err
		}
		fmt.Printf("BS %s (%s %d, %d), fiscal year %s\n",
			bs.String(), bs.MonthName(), bs.Day, bs.Year, bs.FiscalYear())
		return nil
	},
}

func init() {
	dateCmd.AddCommand(dateToBSCmd)
	dateCmd.AddCommand(dateToADCmd)
	dateCmd.AddCommand(dateTodayCmd)
	rootCmd.AddCommand(dateCmd)
}
