package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alfredjeanlab/alerts/internal/config"
	"github.com/alfredjeanlab/alerts/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "alertctl",
	Short:         "Drive and observe the in-memory alert engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = cfg.NewLogger()
		slog.SetDefault(logger)

		if noColor {
			ui.ForceNoColor()
		} else {
			ui.Init()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to TOML profile")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
