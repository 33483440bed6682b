package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "khata",
	Short: "Double-entry accounting with Bikram Sambat dates",
	Long:  "A double-entry bookkeeping system backed by SQLite, with voucher-based posting, Nepali fiscal years and Bikram Sambat date handling.",
}

func init() {
	// Missing .env is fine; the environment alone is enough.
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8090", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides KHATA_DB)")
}

func Execute() error {
	return rootCmd.Execute()
}
