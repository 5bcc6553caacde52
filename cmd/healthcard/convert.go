package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/convert"
)

func convertCmd() *cobra.Command {
	var (
		in     convert.Inputs
		output string
		diag   string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert Samsung Health CSV exports into a snapshot",
		Long:  "Reads one or more Samsung Health CSV exports and writes the merged health-data.json snapshot plus a diagnostics file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			processor := convert.New(convert.WithLogger(slog.Default()))

			snap, diagnostics, err := processor.Run(cmd.Context(), in)
			if err != nil {
				if errors.Is(err, convert.ErrNoData) {
					return fmt.Errorf("no usable data in the given exports: %w", err)
				}
				return err
			}

			if err := convert.WriteSnapshot(snap, output); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			if diag != "" {
				if err := diagnostics.Write(diag); err != nil {
					return fmt.Errorf("failed to write diagnostics: %w", err)
				}
			}

			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Sleep, "sleep", "", "sleep CSV export")
	cmd.Flags().StringVar(&in.Heart, "heart", "", "heart rate CSV export")
	cmd.Flags().StringVar(&in.Steps, "steps", "", "step count CSV export")
	cmd.Flags().StringVar(&in.Stress, "stress", "", "stress CSV export")
	cmd.Flags().StringVarP(&output, "output", "o", "health-data.json", "snapshot output path")
	cmd.Flags().StringVar(&diag, "diagnostics", "health-data-debug.json", "diagnostics output path (empty to skip)")

	return cmd
}
