// Package idgen generates short, URL-safe event ids backed by nanoid.
//
// Alert ids are sequential integers owned by the dispatch engine; this
// package only names the events published about them.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// EventPrefix is prepended to every event id.
var EventPrefix = "ev-"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 12

// EventID returns a new unique event id.
func EventID() (string, error) {
	return WithPrefix(EventPrefix)
}

// WithPrefix returns a new unique ID with the given prefix.
func WithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
