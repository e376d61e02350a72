package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shreekundli/panchang-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "panchang-cli",
	Short: "Vedic calendar location and daily data tool",
	Long:  "Resolves city slugs and queries against the Shreeng engine, fetches daily panchang data, and serves the site API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
