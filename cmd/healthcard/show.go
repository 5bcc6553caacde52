package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/client/healthdata"
	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/presenter"
)

func showCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the health card once and exit",
		Long:  "Fetches the snapshot, runs the full pipeline and prints a plain-text card. Useful for scripts and quick checks.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			location := cfg.DataURL
			if source != "" {
				location = source
			}

			p := presenter.New(healthdata.NewSource(location),
				presenter.WithMaxAge(time.Duration(cfg.MaxAgeHours)*time.Hour),
				presenter.WithLogger(slog.Default()),
			)

			out := p.Load(cmd.Context())
			switch out.State {
			case presenter.StateRendered:
				fmt.Print(plainCard(out.Model))
				return nil
			case presenter.StateStale:
				fmt.Printf("health data is outdated (%s)\n", out.Freshness.Reason)
				return nil
			case presenter.StateInvalid:
				fmt.Println("no health data available")
				return nil
			default:
				return fmt.Errorf("could not load health data: %s", out.Err)
			}
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "override the snapshot URL or file path")

	return cmd
}

func plainCard(model *presenter.Model) string {
	var b strings.Builder

	for _, card := range []*presenter.Card{
		model.Sleep, model.Energy, model.HeartRate, model.Activity, model.Stress,
	} {
		if card == nil {
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s", card.Icon, card.Title, card.Primary)
		if card.Quality != nil {
			fmt.Fprintf(&b, " (%s)", card.Quality.Text)
		}
		b.WriteByte('\n')
		for _, detail := range card.Details {
			fmt.Fprintf(&b, "   %s\n", detail)
		}
	}

	if model.Weekly != nil && len(model.Weekly.Rows) > 0 {
		b.WriteString("7-day:")
		for _, row := range model.Weekly.Rows {
			fmt.Fprintf(&b, " %s %s", row.Title, row.Value)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
