package events

import (
	"context"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// DefaultPrefix is the subject namespace events are published under.
const DefaultPrefix = "alerts"

// Event topics. Publishers place them under their subject prefix, so
// TopicAlertSent is delivered on "alerts.alert.sent" by default.
const (
	TopicUserRegistered    = "user.registered"
	TopicTopicRegistered   = "topic.registered"
	TopicSubscriptionAdded = "subscription.added"
	TopicAlertSent         = "alert.sent"
	TopicAlertRead         = "alert.read"
)

// Meta is embedded in every event payload.
type Meta struct {
	EventID string    `json:"event_id"`
	At      time.Time `json:"at"`
}

// Event types

type UserRegistered struct {
	Meta
	User string `json:"user"`
}

type TopicRegistered struct {
	Meta
	Topic string `json:"topic"`
}

type SubscriptionAdded struct {
	Meta
	User  string `json:"user"`
	Topic string `json:"topic"`
}

type AlertSent struct {
	Meta
	Alert      model.Alert `json:"alert"`
	Topic      string      `json:"topic"`
	Recipients []string    `json:"recipients"`
}

type AlertRead struct {
	Meta
	User    string `json:"user"`
	AlertID int64  `json:"alert_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives raw event messages from the bus.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel until the
	// returned cancel function is called, which also closes the channel.
	Subscribe(subject string) (<-chan Message, func(), error)
	Close() error
}

// NoopPublisher discards every event. It is used when no NATS URL is
// configured.
type NoopPublisher struct{}

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() error { return nil }
