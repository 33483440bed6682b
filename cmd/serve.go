package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/config"
	"github.com/khata-dev/khata/internal/ledger"
	"github.com/khata-dev/khata/internal/server"
	"github.com/khata-dev/khata/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))

		srv, st, err := buildServer(cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		return srv.ListenAndServe()
	},
}

// buildServer wires the store, domain services and HTTP server together.
// The caller owns closing the returned store.
func buildServer(cfg *config.Config, log *slog.Logger) (*server.Server, *store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	registry := ledger.NewRegistry(st)
	if err := registry.SeedDefaults(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}
	engine := ledger.NewEngine(st)
	vouchers := ledger.NewVoucherService(st, engine, cfg.FiscalYear)
	if err := vouchers.InitSequences(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}

	return server.New(registry, engine, vouchers, cfg.Addr, log), st, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8090", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
