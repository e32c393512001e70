package model

import (
	"strings"
	"testing"
)

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidateAlertSpec_Valid(t *testing.T) {
	for _, s := range []AlertSpec{
		{},
		{Message: "Hi", Type: TypeUrgent},
		{Message: "Hi", Type: TypeInformative, Destination: DestinationPersonal},
	} {
		if err := ValidateAlertSpec(s); err != nil {
			t.Errorf("ValidateAlertSpec(%+v) = %v, want nil", s, err)
		}
	}
}

func TestValidateAlertSpec_InvalidFields(t *testing.T) {
	errs := fieldErrors(t, ValidateAlertSpec(AlertSpec{Type: "LOUD", Destination: "EVERYWHERE"}))
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if !hasFieldError(errs, "type") {
		t.Error("missing error for type")
	}
	if !hasFieldError(errs, "destination") {
		t.Error("missing error for destination")
	}
}

func TestValidationError_Error(t *testing.T) {
	var ve ValidationError
	if ve.HasErrors() {
		t.Fatal("empty ValidationError reports errors")
	}
	ve.Add("user", "is required")
	ve.Add("topic", "is required")

	got := ve.Error()
	want := "validation failed: user: is required; topic: is required"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "validation failed: ") {
		t.Errorf("Error() = %q, missing prefix", got)
	}
}
