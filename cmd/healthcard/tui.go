package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/client/healthdata"
	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/presenter"
	"github.com/Lucov/healthcard/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	source := healthdata.NewSource(cfg.DataURL)
	p := presenter.New(source,
		presenter.WithMaxAge(time.Duration(cfg.MaxAgeHours)*time.Hour),
		presenter.WithLogger(slog.Default()),
	)

	deps := tui.Deps{
		Presenter: p,
		Logger:    slog.Default(),
	}
	model := tui.New(deps)

	program := tea.NewProgram(&model)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
