// Package clipboard provides access to the system clipboard.
package clipboard

import (
	atotto "github.com/atotto/clipboard"
)

// Clipboard reads and writes the system clipboard. Read errors mean the
// clipboard is currently unreadable, not that it is empty; callers decide
// how to degrade.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System is the real clipboard, backed by the OS pasteboard.
type System struct{}

func (System) Read() (string, error) {
	return atotto.ReadAll()
}

func (System) Write(text string) error {
	return atotto.WriteAll(text)
}
