// Package dispatch creates alerts and fans them out to recipient inboxes.
//
// The Engine is the only place alert ids are assigned. Ids are dense and
// strictly increasing across personal and broadcast sends: the n-th alert
// ever created gets id n, whatever the number of recipients. Created alerts
// live in the engine's master index for the lifetime of the process; they
// are never mutated or removed.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// Inbox receives delivered alert ids on behalf of a named user.
type Inbox interface {
	Deliver(user string, alertID int64) error
}

// Engine assigns alert ids, keeps the master index and delivers alerts.
// It is safe for concurrent use.
type Engine struct {
	inbox  Inbox
	logger *slog.Logger

	mu     sync.Mutex
	alerts []model.Alert // alerts[i].ID == i+1
}

// New returns an Engine delivering into inbox. A nil logger selects
// slog.Default().
func New(inbox Inbox, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{inbox: inbox, logger: logger}
}

// SendToOne creates a PERSONAL alert and delivers it to user. If delivery
// fails no alert is created and no id is consumed.
func (e *Engine) SendToOne(spec model.AlertSpec, user string) (model.Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	spec.Destination = model.DestinationPersonal
	alert := model.NewAlert(e.nextIDLocked(), spec)

	if err := e.inbox.Deliver(user, alert.ID); err != nil {
		return model.Alert{}, fmt.Errorf("deliver alert %d to %q: %w", alert.ID, user, err)
	}
	e.alerts = append(e.alerts, alert)

	e.logger.Debug("dispatch: personal alert sent",
		"alert_id", alert.ID, "type", alert.Type, "user", user)
	return alert, nil
}

// SendToMany creates one GENERAL alert and delivers that same alert id to
// every user. An empty recipient list still creates and indexes the alert.
// A recipient whose inbox rejects the delivery is skipped and reported in the
// returned error; the alert is still returned.
func (e *Engine) SendToMany(spec model.AlertSpec, users []string) (model.Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	spec.Destination = model.DestinationGeneral
	alert := model.NewAlert(e.nextIDLocked(), spec)
	e.alerts = append(e.alerts, alert)

	var errs []error
	for _, u := range users {
		if err := e.inbox.Deliver(u, alert.ID); err != nil {
			errs = append(errs, fmt.Errorf("deliver alert %d to %q: %w", alert.ID, u, err))
		}
	}

	e.logger.Debug("dispatch: broadcast alert sent",
		"alert_id", alert.ID, "type", alert.Type, "recipients", len(users))
	return alert, errors.Join(errs...)
}

// FindByID looks an alert up in the master index.
func (e *Engine) FindByID(id int64) (model.Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.findLocked(id)
}

// Resolve maps alert ids to alerts, preserving order and skipping ids that
// were never assigned.
func (e *Engine) Resolve(ids []int64) []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.Alert, 0, len(ids))
	for _, id := range ids {
		if a, ok := e.findLocked(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// Count returns how many alerts have been created.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.alerts)
}

// All returns every alert in creation order.
func (e *Engine) All() []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Alert(nil), e.alerts...)
}

func (e *Engine) nextIDLocked() int64 {
	return int64(len(e.alerts)) + 1
}

func (e *Engine) findLocked(id int64) (model.Alert, bool) {
	if id < 1 || id > int64(len(e.alerts)) {
		return model.Alert{}, false
	}
	return e.alerts[id-1], true
}
