package ui

import "testing"

func TestShouldUseColor_Env(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NoColor", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"Forced", map[string]string{"CLICOLOR_FORCE": "1"}, true},
		{"Disabled", map[string]string{"CLICOLOR": "0"}, false},
		{"AlwaysBeatsNoColor", map[string]string{"ALERTS_COLOR": "always", "NO_COLOR": "1"}, true},
		{"Never", map[string]string{"ALERTS_COLOR": "Never", "CLICOLOR_FORCE": "1"}, false},
		{"NotATerminal", nil, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"ALERTS_COLOR", "NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if got := ShouldUseColor(nil); got != tc.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	noColor = false
	t.Cleanup(func() { noColor = false })

	if got, want := RenderUrgent("x"), "\x1b[38;5;203mx\x1b[0m"; got != want {
		t.Errorf("RenderUrgent() = %q, want %q", got, want)
	}
	ForceNoColor()
	for _, fn := range []func(string) string{RenderUrgent, RenderAccent, RenderMuted} {
		if got := fn("x"); got != "x" {
			t.Errorf("render with color disabled = %q, want %q", got, "x")
		}
	}
}
