package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		if save {
			if configPath == "" {
				return fmt.Errorf("no config path; pass --config")
			}
			if err := cfg.Save(configPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Saved %s\n", configPath)
		}

		if jsonOutput {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Printf("Profile:      %s\n", configPath)
		fmt.Printf("NATS URL:     %s\n", orNone(cfg.NATSURL))
		fmt.Printf("Event prefix: %s\n", cfg.EventPrefix)
		fmt.Printf("Log level:    %s\n", cfg.LogLevel)
		fmt.Printf("Log format:   %s\n", cfg.LogFormat)
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("save", false, "write the effective configuration to the profile path")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
