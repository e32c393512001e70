package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// Service is the set of alert operations a scenario can drive.
type Service interface {
	RegisterUser(ctx context.Context, name string) bool
	RegisterTopic(ctx context.Context, name string) bool
	Subscribe(ctx context.Context, user, topic string) bool
	SendByTopic(ctx context.Context, topic string, spec model.AlertSpec) int64
	SendByUser(ctx context.Context, topic, user string, spec model.AlertSpec) int64
	MarkAsRead(ctx context.Context, user string, alertID int64) bool
	UnexpiredByUser(user string) ([]model.Alert, bool)
	UnexpiredByTopic(topic string) ([]model.Alert, bool)
}

// Result is the outcome of one step.
type Result struct {
	Index    int           `json:"index"`
	Op       Op            `json:"op"`
	Target   string        `json:"target"`
	OK       bool          `json:"ok"`
	AlertID  int64         `json:"alert_id,omitempty"`
	Alerts   []model.Alert `json:"alerts,omitempty"`
	Mismatch string        `json:"mismatch,omitempty"`
}

// IsQuery reports whether the step was a read query.
func (r Result) IsQuery() bool {
	return r.Op == OpUnexpiredUser || r.Op == OpUnexpiredTopic
}

// Run executes every step of f in order against svc and returns one Result
// per step. start anchors expires_in values. Run stops early only if ctx is
// canceled; failed operations and expectation mismatches are recorded in
// the results.
func Run(ctx context.Context, svc Service, f *File, start time.Time, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]Result, 0, len(f.Steps))

	for i, s := range f.Steps {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}

		r := Result{Index: i, Op: s.Op, Target: target(s)}
		switch s.Op {
		case OpRegisterUser:
			r.OK = svc.RegisterUser(ctx, s.User)
		case OpRegisterTopic:
			r.OK = svc.RegisterTopic(ctx, s.Topic)
		case OpSubscribe:
			r.OK = svc.Subscribe(ctx, s.User, s.Topic)
		case OpSendTopic:
			r.AlertID = svc.SendByTopic(ctx, s.Topic, s.spec(start))
			r.OK = r.AlertID != 0
		case OpSendUser:
			r.AlertID = svc.SendByUser(ctx, s.Topic, s.User, s.spec(start))
			r.OK = r.AlertID != 0
		case OpMarkRead:
			r.AlertID = s.AlertID
			r.OK = svc.MarkAsRead(ctx, s.User, s.AlertID)
		case OpUnexpiredUser:
			r.Alerts, r.OK = svc.UnexpiredByUser(s.User)
		case OpUnexpiredTopic:
			r.Alerts, r.OK = svc.UnexpiredByTopic(s.Topic)
		default:
			return results, fmt.Errorf("step %d: unknown op %q", i, s.Op)
		}

		r.Mismatch = check(s, r)
		if r.Mismatch != "" {
			logger.Warn("scenario: expectation mismatch", "step", i, "op", s.Op, "detail", r.Mismatch)
		} else {
			logger.Debug("scenario: step done", "step", i, "op", s.Op, "ok", r.OK)
		}
		results = append(results, r)
	}
	return results, nil
}

// Mismatches counts results whose expectations failed.
func Mismatches(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Mismatch != "" {
			n++
		}
	}
	return n
}

func check(s Step, r Result) string {
	if s.ExpectOK != nil && *s.ExpectOK != r.OK {
		return fmt.Sprintf("ok = %v, want %v", r.OK, *s.ExpectOK)
	}
	if s.ExpectID != nil && *s.ExpectID != r.AlertID {
		return fmt.Sprintf("alert id = %d, want %d", r.AlertID, *s.ExpectID)
	}
	if s.ExpectIDs != nil {
		got := make([]int64, len(r.Alerts))
		for i, a := range r.Alerts {
			got[i] = a.ID
		}
		if !slices.Equal(got, s.ExpectIDs) {
			return fmt.Sprintf("alert ids = %v, want %v", got, s.ExpectIDs)
		}
	}
	return ""
}

func target(s Step) string {
	switch {
	case s.User != "" && s.Topic != "":
		return s.User + "@" + s.Topic
	case s.User != "":
		return s.User
	default:
		return s.Topic
	}
}
