package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/server"
)

func serveCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and snapshot over HTTP",
		Long:  "Serves the static site directory plus the snapshot at /api/health-data, the way the published site exposes it. Intended for local preview.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Serve, dataPath, slog.Default())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "health-data.json", "snapshot file to serve at /api/health-data")

	return cmd
}
