package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alfredjeanlab/alerts/internal/alerts"
	"github.com/alfredjeanlab/alerts/internal/events"
	"github.com/alfredjeanlab/alerts/internal/export"
	"github.com/alfredjeanlab/alerts/internal/scenario"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.toml>",
	Short: "Replay a scenario file against a fresh engine",
	Long: `Replay a scenario file against a fresh in-memory engine and print the
outcome of every step. Exits non-zero when any step expectation fails.

When ALERTS_NATS_URL is set, every successful mutation is also published
as an event.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exportPath, _ := cmd.Flags().GetString("export")
		quiet, _ := cmd.Flags().GetBool("quiet")

		f, err := scenario.DecodeFile(args[0])
		if err != nil {
			return err
		}

		publisher, err := newPublisher()
		if err != nil {
			return err
		}
		defer publisher.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		svc := alerts.NewInMemory(alerts.WithPublisher(publisher), alerts.WithLogger(logger))
		start := time.Now()
		results, err := scenario.Run(ctx, svc, f, start, logger)
		if err != nil {
			return err
		}

		if !quiet {
			if jsonOutput {
				printResultsJSON(results)
			} else {
				printResultsTable(f.Name, results)
			}
		}

		if exportPath != "" {
			if err := writeExport(ctx, svc, exportPath); err != nil {
				return err
			}
			logger.Info("state exported", "path", exportPath)
		}

		if n := scenario.Mismatches(results); n > 0 {
			return fmt.Errorf("%d of %d steps did not match expectations", n, len(results))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("export", "", "write the final engine state as JSONL to this file")
	runCmd.Flags().BoolP("quiet", "q", false, "print nothing; rely on the exit code")
}

func newPublisher() (events.Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Debug("events disabled (ALERTS_NATS_URL not set)")
		return &events.NoopPublisher{}, nil
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.EventPrefix)
	if err != nil {
		return nil, err
	}
	logger.Info("events enabled", "nats_url", cfg.NATSURL, "prefix", cfg.EventPrefix)
	return pub, nil
}

func writeExport(ctx context.Context, src export.Source, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.WriteJSONL(ctx, src, out, time.Now()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
