// Package selection reads and replaces the focused element's selected text
// through the OS accessibility tree.
package selection

import "errors"

// ErrUnavailable means the accessibility path cannot serve the request:
// permission is missing, no element has focus, or the focused element does
// not expose a selection. It is a degrade signal, not a failure; callers
// fall through to the clipboard-mediated path.
var ErrUnavailable = errors.New("selection: accessibility unavailable")

// Accessor reads and replaces the selected text of the focused UI element
// without touching the clipboard.
type Accessor interface {
	ReadSelected() (string, error)
	WriteSelected(text string) error
}

// New returns the accessor for this platform.
func New() Accessor {
	return newAccessor()
}
