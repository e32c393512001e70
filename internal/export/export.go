// Package export dumps the engine's current state as JSON Lines. The dump
// is a diagnostic snapshot; nothing reads it back.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// Source exposes the state being exported.
type Source interface {
	Users() []model.User
	Topics() []model.Topic
	Alerts() []model.Alert
}

// header is the first JSONL record written by WriteJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	UserCount  int       `json:"user_count"`
	TopicCount int       `json:"topic_count"`
	AlertCount int       `json:"alert_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WriteJSONL writes a header, then users and topics sorted by name, then
// alerts in id order.
func WriteJSONL(ctx context.Context, src Source, w io.Writer, now time.Time) error {
	users := src.Users()
	topics := src.Topics()
	alerts := src.Alerts()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  now.UTC(),
		UserCount:  len(users),
		TopicCount: len(topics),
		AlertCount: len(alerts),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, u := range users {
		if err := enc.Encode(record{Type: "user", Data: u}); err != nil {
			return fmt.Errorf("encode user %s: %w", u.Name, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, t := range topics {
		if err := enc.Encode(record{Type: "topic", Data: t}); err != nil {
			return fmt.Errorf("encode topic %s: %w", t.Name, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, a := range alerts {
		if err := enc.Encode(record{Type: "alert", Data: a}); err != nil {
			return fmt.Errorf("encode alert %d: %w", a.ID, err)
		}
	}
	return nil
}
