package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor reports whether ANSI colors should be written to f.
//
// ALERTS_COLOR=always|never wins over everything else. After that NO_COLOR
// (https://no-color.org) disables color, CLICOLOR_FORCE=1 forces it and
// CLICOLOR=0 disables it. Otherwise color is used when f is a terminal.
func ShouldUseColor(f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ALERTS_COLOR"))) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
