package model

import (
	"strings"
	"time"
)

// AlertType governs presentation order only; it has no effect on delivery
// or expiration.
type AlertType string

const (
	TypeInformative AlertType = "INFORMATIVE"
	TypeUrgent      AlertType = "URGENT"
)

// String returns the string representation of the alert type.
func (t AlertType) String() string {
	return string(t)
}

// IsValid checks whether the alert type is a known value.
func (t AlertType) IsValid() bool {
	switch t {
	case TypeInformative, TypeUrgent:
		return true
	}
	return false
}

// ParseAlertType converts a case-insensitive name into an AlertType.
// An empty string yields TypeInformative.
func ParseAlertType(s string) (AlertType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeInformative, true
	}
	t := AlertType(strings.ToUpper(s))
	return t, t.IsValid()
}

// Destination tells whether an alert was broadcast to a topic or addressed
// to a single subscriber.
type Destination string

const (
	DestinationGeneral  Destination = "GENERAL"
	DestinationPersonal Destination = "PERSONAL"
)

// String returns the string representation of the destination.
func (d Destination) String() string {
	return string(d)
}

// IsValid checks whether the destination is a known value.
func (d Destination) IsValid() bool {
	switch d {
	case DestinationGeneral, DestinationPersonal:
		return true
	}
	return false
}

// Alert is an immutable record created by the dispatch engine.
type Alert struct {
	ID          int64       `json:"id"`
	Message     string      `json:"message"`
	Type        AlertType   `json:"type"`
	Destination Destination `json:"destination"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
}

// IsUrgent reports whether the alert is of type URGENT.
func (a Alert) IsUrgent() bool {
	return a.Type == TypeUrgent
}

// Unexpired reports whether the alert has no expiration or expires strictly
// after now.
func (a Alert) Unexpired(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// Expired is the negation of Unexpired.
func (a Alert) Expired(now time.Time) bool {
	return !a.Unexpired(now)
}

// AlertSpec carries the caller-supplied parts of a new alert. Zero values
// select the defaults applied by NewAlert.
type AlertSpec struct {
	Message     string
	Type        AlertType   // default TypeInformative
	Destination Destination // default DestinationGeneral
	ExpiresAt   *time.Time  // nil = never expires
}

// NewAlert builds an alert with the given id, filling in defaults for an
// unset type or destination.
func NewAlert(id int64, spec AlertSpec) Alert {
	if spec.Type == "" {
		spec.Type = TypeInformative
	}
	if spec.Destination == "" {
		spec.Destination = DestinationGeneral
	}
	a := Alert{
		ID:          id,
		Message:     spec.Message,
		Type:        spec.Type,
		Destination: spec.Destination,
	}
	if spec.ExpiresAt != nil {
		exp := *spec.ExpiresAt
		a.ExpiresAt = &exp
	}
	return a
}
