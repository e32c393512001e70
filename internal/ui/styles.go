package ui

import (
	"fmt"
	"os"
)

// ANSI256 color codes.
const (
	colorUrgent = 203 // red
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderUrgent returns s in the urgent (red) color.
func RenderUrgent(s string) string { return render(colorUrgent, s) }

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// Init disables color when stdout should not be colored.
func Init() {
	if !ShouldUseColor(os.Stdout) {
		ForceNoColor()
	}
}
