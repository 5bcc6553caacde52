package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/Lucov/healthcard/internal/client/github"
	"github.com/Lucov/healthcard/internal/version"
)

func upgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Check for updates and install if available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			currentVersion := version.Get()

			client := github.NewClient()
			latest, err := client.GetLatestRelease(ctx, "Lucov", "healthcard")
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}

			if !version.IsNewer(currentVersion, latest.TagName) {
				fmt.Printf("healthcard is up to date (%s)\n", currentVersion)
				return nil
			}

			fmt.Printf("Updating healthcard %s → %s\n", currentVersion, latest.TagName)

			return goInstallUpgrade(ctx)
		},
	}
}

func goInstallUpgrade(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "go", "install", "github.com/Lucov/healthcard/cmd/healthcard@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}
	fmt.Println("Successfully updated!")
	return nil
}
