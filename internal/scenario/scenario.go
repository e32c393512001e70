// Package scenario loads scripted sequences of alert operations from TOML
// and replays them against an alert service.
//
// A scenario file is a list of [[step]] tables:
//
//	[[step]]
//	op = "register_user"
//	user = "Ana"
//
//	[[step]]
//	op = "send_topic"
//	topic = "News"
//	message = "Hi"
//	type = "urgent"
//	expires_in = "1h"
//	expect_id = 1
//
// Steps may carry expectations (expect_ok, expect_id, expect_ids); a step
// whose outcome differs is reported as a mismatch.
package scenario

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/alerts/internal/model"
)

// Op names a scenario step.
type Op string

const (
	OpRegisterUser   Op = "register_user"
	OpRegisterTopic  Op = "register_topic"
	OpSubscribe      Op = "subscribe"
	OpSendTopic      Op = "send_topic"
	OpSendUser       Op = "send_user"
	OpMarkRead       Op = "mark_read"
	OpUnexpiredUser  Op = "unexpired_user"
	OpUnexpiredTopic Op = "unexpired_topic"
)

// IsValid checks whether the op is a known value.
func (o Op) IsValid() bool {
	switch o {
	case OpRegisterUser, OpRegisterTopic, OpSubscribe, OpSendTopic, OpSendUser,
		OpMarkRead, OpUnexpiredUser, OpUnexpiredTopic:
		return true
	}
	return false
}

// File is a decoded scenario.
type File struct {
	Name  string `toml:"name"`
	Steps []Step `toml:"step"`
}

// Step is one operation plus optional expectations.
type Step struct {
	Op        Op         `toml:"op"`
	User      string     `toml:"user"`
	Topic     string     `toml:"topic"`
	Message   string     `toml:"message"`
	Type      string     `toml:"type"`
	ExpiresAt *time.Time `toml:"expires_at"`
	ExpiresIn string     `toml:"expires_in"`
	AlertID   int64      `toml:"alert_id"`

	ExpectOK  *bool   `toml:"expect_ok"`
	ExpectID  *int64  `toml:"expect_id"`
	ExpectIDs []int64 `toml:"expect_ids"`
}

// Decode reads a scenario from r and validates it.
func Decode(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeFile reads and validates the scenario at path.
func DecodeFile(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every step for a known op, the fields that op needs, a
// valid alert type and a parseable expires_in. It returns a
// *model.ValidationError listing every problem, or nil.
func Validate(f *File) error {
	var ve model.ValidationError

	if len(f.Steps) == 0 {
		ve.Add("step", "at least one step is required")
	}
	for i, s := range f.Steps {
		field := func(name string) string { return fmt.Sprintf("step[%d].%s", i, name) }

		if !s.Op.IsValid() {
			ve.Add(field("op"), fmt.Sprintf("invalid value %q", s.Op))
			continue
		}
		for _, name := range requiredFields(s.Op) {
			if s.fieldValue(name) == "" {
				ve.Add(field(name), "is required for "+string(s.Op))
			}
		}
		if s.Op == OpMarkRead && s.AlertID < 1 {
			ve.Add(field("alert_id"), "must be at least 1")
		}
		if _, ok := model.ParseAlertType(s.Type); !ok {
			ve.Add(field("type"), fmt.Sprintf("invalid value %q", s.Type))
		}
		if s.ExpiresIn != "" {
			if s.ExpiresAt != nil {
				ve.Add(field("expires_in"), "cannot be combined with expires_at")
			} else if _, err := time.ParseDuration(s.ExpiresIn); err != nil {
				ve.Add(field("expires_in"), err.Error())
			}
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func requiredFields(op Op) []string {
	switch op {
	case OpRegisterUser, OpUnexpiredUser, OpMarkRead:
		return []string{"user"}
	case OpRegisterTopic, OpUnexpiredTopic, OpSendTopic:
		return []string{"topic"}
	case OpSubscribe, OpSendUser:
		return []string{"user", "topic"}
	}
	return nil
}

func (s Step) fieldValue(name string) string {
	switch name {
	case "user":
		return s.User
	case "topic":
		return s.Topic
	}
	return ""
}

// spec builds the AlertSpec for a send step. Relative expirations are
// resolved against start.
func (s Step) spec(start time.Time) model.AlertSpec {
	typ, _ := model.ParseAlertType(s.Type)
	spec := model.AlertSpec{Message: s.Message, Type: typ}
	switch {
	case s.ExpiresAt != nil:
		exp := *s.ExpiresAt
		spec.ExpiresAt = &exp
	case s.ExpiresIn != "":
		d, _ := time.ParseDuration(s.ExpiresIn)
		exp := start.Add(d)
		spec.ExpiresAt = &exp
	}
	return spec
}
