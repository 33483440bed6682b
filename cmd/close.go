package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/client"
)

var closeFY string

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a fiscal year",
	Long: `Close a fiscal year: compute the period's net profit and post a
closing journal voucher transferring it to the capital account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		result, err := c.CloseFiscalYear(context.Background(), closeFY)
		if err != nil {
			return err
		}

		fmt.Printf("Fiscal year %s closed.\n", result.FiscalYear)
		fmt.Printf("Net profit transferred to capital: %s\n", result.NetProfit.StringFixed(2))
		return nil
	},
}

func init() {
	closeCmd.Flags().StringVar(&closeFY, "fiscal-year", "", "Fiscal year label (e.g. 2080/81, defaults to the server's active year)")
	rootCmd.AddCommand(closeCmd)
}
