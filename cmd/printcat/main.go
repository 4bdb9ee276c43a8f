package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studiowebux/printcat/internal/config"
	"github.com/studiowebux/printcat/internal/logging"
	"github.com/studiowebux/printcat/internal/tui"
	"github.com/studiowebux/printcat/internal/version"
)

var (
	appVersion = "0.1.0"

	// interactive is swapped in tests
	interactive = tui.IsInteractive
)

const usage = `printcat needs an interactive terminal.

Run it directly in a terminal window:
  printcat

Configuration:
  PRINTCAT_API_URL   catalog service base URL (default http://localhost:8000)
  PRODUCTS_DIR       root folder holding one directory per product SKU
  ~/.printcat/config.yaml and ./.env are read as well.
`

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "printcat",
	Short: "Terminal UI for a 3D-print product catalog",
	Long: `printcat browses and edits a 3D-print product catalog served over HTTP.

Tabs:
  Create      fill in a new product field by field
  Search      filter products and edit them one field at a time
  Inventory   review stock levels and adjust quantities

Press f1 inside the TUI for the full list of key bindings.`,
	Version:       appVersion,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Usage must not depend on a writable home directory
		if !interactive() {
			fmt.Fprint(cmd.OutOrStdout(), usage)
			return nil
		}

		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
			return err
		}
		defer logging.Sync()

		err = tui.Run(cfg)
		if errors.Is(err, tui.ErrNotInteractive) {
			fmt.Fprint(cmd.OutOrStdout(), usage)
			return nil
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "printcat %s\n", appVersion)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		available, release, err := version.NewChecker().UpdateAvailable(context.Background(), appVersion)
		if err != nil {
			return err
		}
		if available {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s\n%s\n", release.Version(), release.HTMLURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are running the latest release")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Look up the latest published release")
	rootCmd.AddCommand(versionCmd)
}
