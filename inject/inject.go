// Package inject synthesizes copy and paste keystrokes in the frontmost
// application.
package inject

import (
	"errors"
	"fmt"

	"github.com/go-vgo/robotgo"
)

// ErrUnavailable means the low-level event path does not exist on this
// platform.
var ErrUnavailable = errors.New("inject: low-level events unavailable")

// Injector synthesizes clipboard keystrokes. Copy and Paste use the portable
// event path; CopyLowLevel posts raw HID events for foreground apps that
// ignore the portable one.
type Injector interface {
	Copy() error
	Paste() error
	CopyLowLevel() error
}

// Keyboard is the real injector.
type Keyboard struct{}

func (Keyboard) Copy() error {
	if err := robotgo.KeyTap("c", "cmd"); err != nil {
		return fmt.Errorf("key tap cmd+c: %w", err)
	}
	return nil
}

func (Keyboard) Paste() error {
	if err := robotgo.KeyTap("v", "cmd"); err != nil {
		return fmt.Errorf("key tap cmd+v: %w", err)
	}
	return nil
}

func (Keyboard) CopyLowLevel() error {
	return copyLowLevel()
}
