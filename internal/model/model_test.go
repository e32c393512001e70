package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAlertType(t *testing.T) {
	tests := []struct {
		in     string
		want   AlertType
		wantOK bool
	}{
		{"", TypeInformative, true},
		{"informative", TypeInformative, true},
		{"URGENT", TypeUrgent, true},
		{" Urgent ", TypeUrgent, true},
		{"loud", AlertType("LOUD"), false},
	}
	for _, tt := range tests {
		got, ok := ParseAlertType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAlertType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewAlert_Defaults(t *testing.T) {
	a := NewAlert(7, AlertSpec{Message: "Hi"})
	if a.ID != 7 || a.Message != "Hi" {
		t.Errorf("NewAlert() = %+v", a)
	}
	if a.Type != TypeInformative {
		t.Errorf("Type = %q, want INFORMATIVE", a.Type)
	}
	if a.Destination != DestinationGeneral {
		t.Errorf("Destination = %q, want GENERAL", a.Destination)
	}
	if a.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil", a.ExpiresAt)
	}
}

func TestNewAlert_CopiesExpiry(t *testing.T) {
	exp := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	spec := AlertSpec{ExpiresAt: &exp}
	a := NewAlert(1, spec)

	exp = exp.Add(time.Hour)
	if !a.ExpiresAt.Equal(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("ExpiresAt changed with caller's value: %v", a.ExpiresAt)
	}
}

func TestAlert_Unexpired(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	after := now.Add(time.Second)

	tests := []struct {
		name    string
		expires *time.Time
		want    bool
	}{
		{"no expiry", nil, true},
		{"in the past", &before, false},
		{"exactly now", &now, false},
		{"in the future", &after, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Alert{ExpiresAt: tt.expires}
			if got := a.Unexpired(now); got != tt.want {
				t.Errorf("Unexpired() = %v, want %v", got, tt.want)
			}
			if a.Expired(now) == tt.want {
				t.Errorf("Expired() = %v, want %v", a.Expired(now), !tt.want)
			}
		})
	}
}

func TestAlert_JSON(t *testing.T) {
	a := NewAlert(3, AlertSpec{Message: "Fire", Type: TypeUrgent, Destination: DestinationPersonal})
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":3,"message":"Fire","type":"URGENT","destination":"PERSONAL"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestUser_IsSubscribed(t *testing.T) {
	u := User{Name: "Ana", Topics: []string{"News", "Sports"}}
	if !u.IsSubscribed("News") {
		t.Error("IsSubscribed(News) = false")
	}
	if u.IsSubscribed("news") {
		t.Error("IsSubscribed(news) = true, names are case-sensitive")
	}
}
