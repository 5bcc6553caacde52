package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/client/googlefit"
	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/convert"
	"github.com/Lucov/healthcard/internal/paths"
)

func fetchCmd() *cobra.Command {
	var (
		login  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a snapshot from Google Fit",
		Long:  "Pulls sleep, heart rate, step and calorie data from the Google Fit REST API and writes a health-data.json snapshot. Run with --login first to authorize.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
				return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
			}

			oauthCfg := googlefit.NewOAuthConfig(cfg.Google)

			if login {
				if _, err := paths.EnsureDir(); err != nil {
					return err
				}
				if _, err := googlefit.RunLoginFlow(ctx, oauthCfg); err != nil {
					return fmt.Errorf("authentication failed: %w", err)
				}
				fmt.Println("Authentication successful!")
				return nil
			}

			tokenSource := googlefit.NewFileTokenSource(oauthCfg)
			if !tokenSource.HasToken() {
				return fmt.Errorf("no stored token; run `healthcard fetch --login` first")
			}

			client := googlefit.New(tokenSource, googlefit.WithLogger(slog.Default()))

			snap, err := client.FetchSnapshot(ctx)
			if err != nil {
				return err
			}

			if err := convert.WriteSnapshot(snap, output); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&login, "login", false, "run the browser authorization flow and store the token")
	cmd.Flags().StringVarP(&output, "output", "o", "health-data.json", "snapshot output path")

	return cmd
}
