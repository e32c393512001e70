package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alfredjeanlab/alerts/internal/events"
	"github.com/alfredjeanlab/alerts/internal/ui"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print alert engine events from NATS as they arrive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		if subject == "" {
			subject = events.Subject(cfg.EventPrefix, ">")
		}
		if cfg.NATSURL == "" {
			return fmt.Errorf("ALERTS_NATS_URL is required for watch")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats: disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("nats: reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(subject)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		logger.Info("watching", "subject", subject)
		return watchLoop(ctx, ch)
	},
}

func init() {
	watchCmd.Flags().String("subject", "", "NATS subject to watch (default <prefix>.>)")
}

func watchLoop(ctx context.Context, ch <-chan events.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			printEvent(msg)
		}
	}
}

func printEvent(msg events.Message) {
	if jsonOutput {
		fmt.Println(string(msg.Data))
		return
	}
	var meta events.Meta
	_ = json.Unmarshal(msg.Data, &meta)
	at := meta.At
	if at.IsZero() {
		at = time.Now()
	}
	fmt.Printf("%s  %s  %s\n",
		ui.RenderMuted(at.Local().Format("15:04:05")),
		ui.RenderAccent(msg.Subject),
		string(msg.Data))
}
