package ordering

import (
	"reflect"
	"testing"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
)

func alert(id int64, typ model.AlertType) model.Alert {
	return model.Alert{ID: id, Type: typ}
}

func ids(alerts []model.Alert) []int64 {
	out := make([]int64, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func TestLess(t *testing.T) {
	u := model.TypeUrgent
	i := model.TypeInformative
	for _, tc := range []struct {
		name string
		a, b model.Alert
		want bool
	}{
		{"UrgentNewerFirst", alert(5, u), alert(4, u), true},
		{"UrgentOlderSecond", alert(4, u), alert(5, u), false},
		{"UrgentBeforeInformative", alert(1, u), alert(9, i), true},
		{"InformativeAfterUrgent", alert(1, i), alert(9, u), false},
		{"InformativeOlderFirst", alert(1, i), alert(2, i), true},
		{"InformativeNewerSecond", alert(2, i), alert(1, i), false},
		{"SameAlert", alert(3, i), alert(3, i), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Less(tc.a, tc.b); got != tc.want {
				t.Errorf("Less(%d/%s, %d/%s) = %v, want %v", tc.a.ID, tc.a.Type, tc.b.ID, tc.b.Type, got, tc.want)
			}
		})
	}
}

func TestSort_UrgentLIFOThenInformativeFIFO(t *testing.T) {
	alerts := []model.Alert{
		alert(1, model.TypeInformative),
		alert(2, model.TypeInformative),
		alert(3, model.TypeInformative),
		alert(4, model.TypeUrgent),
		alert(5, model.TypeUrgent),
	}
	Sort(alerts)
	if got, want := ids(alerts), []int64{5, 4, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestSort_Interleaved(t *testing.T) {
	alerts := []model.Alert{
		alert(6, model.TypeInformative),
		alert(2, model.TypeUrgent),
		alert(3, model.TypeInformative),
		alert(7, model.TypeUrgent),
		alert(1, model.TypeInformative),
	}
	Sort(alerts)
	if got, want := ids(alerts), []int64{7, 2, 1, 3, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestUnexpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	exact := now

	alerts := []model.Alert{
		{ID: 1},
		{ID: 2, ExpiresAt: &past},
		{ID: 3, ExpiresAt: &future},
		{ID: 4, ExpiresAt: &exact},
	}
	if got, want := ids(Unexpired(alerts, now)), []int64{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Unexpired() = %v, want %v", got, want)
	}
}

func TestPresent_ReevaluatesAgainstNow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := base.Add(time.Hour)
	alerts := []model.Alert{
		{ID: 1, Type: model.TypeInformative},
		{ID: 2, Type: model.TypeUrgent, ExpiresAt: &exp},
	}

	if got, want := ids(Present(alerts, base)), []int64{2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Present(before expiry) = %v, want %v", got, want)
	}
	if got, want := ids(Present(alerts, exp.Add(time.Second))), []int64{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Present(after expiry) = %v, want %v", got, want)
	}
}

func TestPresent_DoesNotModifyInput(t *testing.T) {
	alerts := []model.Alert{
		alert(1, model.TypeInformative),
		alert(2, model.TypeUrgent),
	}
	_ = Present(alerts, time.Now())
	if got := ids(alerts); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestPresent_Empty(t *testing.T) {
	got := Present(nil, time.Now())
	if got == nil || len(got) != 0 {
		t.Errorf("Present(nil) = %#v, want empty non-nil slice", got)
	}
}
