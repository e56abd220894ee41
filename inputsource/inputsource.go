// Package inputsource reads the active keyboard input source.
package inputsource

import (
	"errors"
	"strings"

	"layfix/layout"
)

// ErrUnknown is returned when the current input source cannot be read or is
// not one of the two supported layouts. Callers keep their previous reading.
var ErrUnknown = errors.New("inputsource: unknown input source")

// Reader reports the active keyboard layout.
type Reader interface {
	Current() (layout.Layout, error)
}

// New returns the input-source reader for this platform.
func New() Reader {
	return newReader()
}

// Classify maps an input-source ID (for example "com.apple.keylayout.Russian")
// and its localized name to a Layout. The second return is false for sources
// that are neither of the two supported layouts.
func Classify(id, name string) (layout.Layout, bool) {
	for _, s := range []string{strings.ToLower(id), strings.ToLower(name)} {
		switch {
		case strings.Contains(s, "russian"), strings.Contains(s, "рус"):
			return layout.RU, true
		case strings.Contains(s, "abc"), strings.Contains(s, "u.s."), strings.Contains(s, "english"):
			return layout.EN, true
		}
	}
	// The stock US layout carries the bare ID "com.apple.keylayout.US".
	if strings.EqualFold(strings.TrimPrefix(id, "com.apple.keylayout."), "us") {
		return layout.EN, true
	}
	return 0, false
}
