package store

import (
	"errors"

	"github.com/alfredjeanlab/alerts/internal/model"
)

var (
	// ErrNotFound is returned when a user or topic name is not registered.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when registering a name that is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// UserStore holds registered users, their subscriptions and their unread
// alert inboxes. Users are keyed by exact, case-sensitive name.
type UserStore interface {
	Register(name string) error
	Find(name string) (model.User, error)
	List() []model.User

	// Subscriptions. Subscribing twice is a no-op.
	Subscribe(name, topic string) error
	IsSubscribed(name, topic string) bool
	SubscribersOf(topic string) []string

	// Inbox. Deliver performs no subscription check; Acknowledge returns
	// false when the alert is not in the user's unread list.
	Deliver(name string, alertID int64) error
	Acknowledge(name string, alertID int64) (bool, error)
}

// TopicStore holds registered topics and the history of alert ids sent
// through each of them.
type TopicStore interface {
	Register(name string) error
	Find(name string) (model.Topic, error)
	List() []model.Topic

	// RecordAlert appends to the topic history for broadcast and personal
	// sends alike.
	RecordAlert(name string, alertID int64) error
}
