package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/config"
	"github.com/khata-dev/khata/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverAddr := flagServer

		if !cmd.Flags().Changed("server") {
			// Start embedded server in background on a local port.
			cfg := config.Load()
			if flagDB != "" {
				cfg.DBPath = flagDB
			}
			cfg.Addr = "127.0.0.1:8090"
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			srv, st, err := buildServer(cfg, log)
			if err != nil {
				return err
			}
			defer st.Close()

			go srv.ListenAndServe()
			serverAddr = "http://127.0.0.1:8090"

			// Wait for the embedded server to come up.
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr)
		app := tui.NewApp(c)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
