// Package alerts wires the user and topic registries to the dispatch engine
// and exposes the caller-facing operations.
//
// Every failure is reported as a negative value rather than an error:
// registration, subscription and mark-as-read return false, sends return
// NoAlert, and queries return ok=false for an unknown user or topic.
package alerts

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/alerts/internal/dispatch"
	"github.com/alfredjeanlab/alerts/internal/events"
	"github.com/alfredjeanlab/alerts/internal/idgen"
	"github.com/alfredjeanlab/alerts/internal/model"
	"github.com/alfredjeanlab/alerts/internal/ordering"
	"github.com/alfredjeanlab/alerts/internal/store"
	"github.com/alfredjeanlab/alerts/internal/store/memory"
)

// NoAlert is returned by the send operations when nothing was sent. Real
// alert ids start at 1.
const NoAlert int64 = 0

// Service is the orchestrator over the registries and the dispatch engine.
type Service struct {
	users     store.UserStore
	topics    store.TopicStore
	engine    *dispatch.Engine
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the event publisher. The default publishes nothing.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the time source used for expiration filtering and event
// timestamps. The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service backed by the given registries.
func New(users store.UserStore, topics store.TopicStore, opts ...Option) *Service {
	s := &Service{
		users:     users,
		topics:    topics,
		publisher: &events.NoopPublisher{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = dispatch.New(users, s.logger)
	return s
}

// NewInMemory returns a Service over fresh in-memory registries.
func NewInMemory(opts ...Option) *Service {
	return New(memory.NewUsers(), memory.NewTopics(), opts...)
}

// RegisterUser adds a user. It returns false if the name is taken.
func (s *Service) RegisterUser(ctx context.Context, name string) bool {
	if err := s.users.Register(name); err != nil {
		s.logger.Debug("register user rejected", "user", name, "error", err)
		return false
	}
	s.publish(ctx, events.TopicUserRegistered, events.UserRegistered{Meta: s.meta(), User: name})
	return true
}

// RegisterTopic adds a topic. It returns false if the name is taken.
func (s *Service) RegisterTopic(ctx context.Context, name string) bool {
	if err := s.topics.Register(name); err != nil {
		s.logger.Debug("register topic rejected", "topic", name, "error", err)
		return false
	}
	s.publish(ctx, events.TopicTopicRegistered, events.TopicRegistered{Meta: s.meta(), Topic: name})
	return true
}

// Subscribe subscribes user to topic. It returns false if either is unknown.
// Subscribing again to the same topic succeeds without further effect.
func (s *Service) Subscribe(ctx context.Context, user, topic string) bool {
	if _, err := s.topics.Find(topic); err != nil {
		return false
	}
	if err := s.users.Subscribe(user, topic); err != nil {
		return false
	}
	s.publish(ctx, events.TopicSubscriptionAdded, events.SubscriptionAdded{Meta: s.meta(), User: user, Topic: topic})
	return true
}

// SendByTopic broadcasts one alert to every current subscriber of topic and
// records it in the topic history. A topic without subscribers still gets an
// alert. It returns NoAlert if the topic is unknown or spec is invalid.
func (s *Service) SendByTopic(ctx context.Context, topic string, spec model.AlertSpec) int64 {
	if err := model.ValidateAlertSpec(spec); err != nil {
		s.logger.Warn("send by topic rejected", "topic", topic, "error", err)
		return NoAlert
	}
	if _, err := s.topics.Find(topic); err != nil {
		return NoAlert
	}

	recipients := s.users.SubscribersOf(topic)
	alert, err := s.engine.SendToMany(spec, recipients)
	if err != nil {
		// The alert exists even if some deliveries failed.
		s.logger.Warn("broadcast partially delivered", "topic", topic, "alert_id", alert.ID, "error", err)
	}
	s.record(topic, alert.ID)

	s.publish(ctx, events.TopicAlertSent, events.AlertSent{Meta: s.meta(), Alert: alert, Topic: topic, Recipients: recipients})
	return alert.ID
}

// SendByUser sends a personal alert to user through topic. It returns
// NoAlert, without consuming an id, if the user or topic is unknown, the
// user is not subscribed to the topic, or spec is invalid.
func (s *Service) SendByUser(ctx context.Context, topic, user string, spec model.AlertSpec) int64 {
	if err := model.ValidateAlertSpec(spec); err != nil {
		s.logger.Warn("send by user rejected", "topic", topic, "user", user, "error", err)
		return NoAlert
	}
	if _, err := s.topics.Find(topic); err != nil {
		return NoAlert
	}
	if !s.users.IsSubscribed(user, topic) {
		return NoAlert
	}

	alert, err := s.engine.SendToOne(spec, user)
	if err != nil {
		s.logger.Warn("personal send failed", "topic", topic, "user", user, "error", err)
		return NoAlert
	}
	s.record(topic, alert.ID)

	s.publish(ctx, events.TopicAlertSent, events.AlertSent{Meta: s.meta(), Alert: alert, Topic: topic, Recipients: []string{user}})
	return alert.ID
}

// MarkAsRead removes an alert from the user's unread list. It returns false
// if the user or alert is unknown or the alert was not unread for that user.
func (s *Service) MarkAsRead(ctx context.Context, user string, alertID int64) bool {
	if _, ok := s.engine.FindByID(alertID); !ok {
		return false
	}
	removed, err := s.users.Acknowledge(user, alertID)
	if err != nil || !removed {
		return false
	}
	s.publish(ctx, events.TopicAlertRead, events.AlertRead{Meta: s.meta(), User: user, AlertID: alertID})
	return true
}

// UnexpiredByUser returns the user's unread, unexpired alerts in
// presentation order. ok is false if the user is unknown.
func (s *Service) UnexpiredByUser(user string) (alerts []model.Alert, ok bool) {
	u, err := s.users.Find(user)
	if err != nil {
		return nil, false
	}
	return ordering.Present(s.engine.Resolve(u.Unread), s.now()), true
}

// UnexpiredByTopic returns the unexpired alerts ever sent through topic in
// presentation order. ok is false if the topic is unknown.
func (s *Service) UnexpiredByTopic(topic string) (alerts []model.Alert, ok bool) {
	t, err := s.topics.Find(topic)
	if err != nil {
		return nil, false
	}
	return ordering.Present(s.engine.Resolve(t.History), s.now()), true
}

// FindAlert looks an alert up by id.
func (s *Service) FindAlert(id int64) (model.Alert, bool) {
	return s.engine.FindByID(id)
}

// Users returns a snapshot of every registered user.
func (s *Service) Users() []model.User { return s.users.List() }

// Topics returns a snapshot of every registered topic.
func (s *Service) Topics() []model.Topic { return s.topics.List() }

// Alerts returns every alert ever created, in id order.
func (s *Service) Alerts() []model.Alert { return s.engine.All() }

func (s *Service) record(topic string, alertID int64) {
	if err := s.topics.RecordAlert(topic, alertID); err != nil {
		s.logger.Warn("failed to record alert in topic history", "topic", topic, "alert_id", alertID, "error", err)
	}
}

func (s *Service) meta() events.Meta {
	id, err := idgen.EventID()
	if err != nil {
		s.logger.Warn("failed to generate event id", "error", err)
	}
	return events.Meta{EventID: id, At: s.now().UTC()}
}

// publish is best-effort; failures are logged and never change the result
// of the operation that triggered them.
func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
