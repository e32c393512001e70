// Package ordering turns a raw collection of alerts into the list shown to a
// user: expired alerts are dropped, urgent alerts come first newest-first,
// and informative alerts follow oldest-first.
package ordering

import (
	"sort"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// Unexpired returns the alerts with no expiration or an expiration strictly
// after now, in their original order.
func Unexpired(alerts []model.Alert, now time.Time) []model.Alert {
	out := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Unexpired(now) {
			out = append(out, a)
		}
	}
	return out
}

// Less reports whether a is presented before b.
//
//   - urgent vs urgent: higher id first (LIFO)
//   - urgent vs informative: urgent first, ids not compared
//   - informative vs informative: lower id first (FIFO)
func Less(a, b model.Alert) bool {
	switch {
	case a.IsUrgent() && b.IsUrgent():
		return a.ID > b.ID
	case a.IsUrgent():
		return true
	case b.IsUrgent():
		return false
	default:
		return a.ID < b.ID
	}
}

// Sort orders alerts in place with a stable sort using Less.
func Sort(alerts []model.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return Less(alerts[i], alerts[j])
	})
}

// Present filters out alerts expired at now and sorts the rest. The input
// slice is not modified.
func Present(alerts []model.Alert, now time.Time) []model.Alert {
	out := Unexpired(alerts, now)
	Sort(out)
	return out
}
