package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/version"
	"github.com/Lucov/healthcard/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	// logs go to stderr so they never tear the TUI
	logger := xslog.NewLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:     "healthcard",
		Short:   "Personal health stats in your terminal",
		Version: version.Get(),
		RunE:    runTUI,
	}

	rootCmd.AddCommand(
		showCmd(),
		convertCmd(),
		fetchCmd(),
		serveCmd(),
		upgradeCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
