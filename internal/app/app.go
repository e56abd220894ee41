// Package app wires the layout watcher to the conversion pipeline.
package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"layfix/clipboard"
	"layfix/config"
	"layfix/inject"
	"layfix/inputsource"
	"layfix/layout"
	"layfix/selection"
)

// Verifier approves a transformed text for a target layout. Optional; a nil
// Verifier approves everything.
type Verifier interface {
	Matches(text string, target layout.Layout) bool
}

// Fixer watches the active input source and converts the selected text when
// the user switches layouts. At most one conversion runs at a time; a switch
// that arrives while one is in flight is dropped, not queued, because a
// queued conversion would act on a selection that may have moved.
type Fixer struct {
	cfg *config.Config

	layouts  inputsource.Reader
	clip     clipboard.Clipboard
	sel      selection.Accessor
	keys     inject.Injector
	verifier Verifier

	// converting is the in-flight guard. Acquired with CompareAndSwap by
	// the trigger, released unconditionally by the conversion goroutine.
	converting atomic.Bool
	wg         sync.WaitGroup

	// trigger is replaced in tests to observe scheduling decisions.
	trigger func(target layout.Layout)
}

// New creates a Fixer over the given capabilities. verifier may be nil.
func New(cfg *config.Config, layouts inputsource.Reader, clip clipboard.Clipboard, sel selection.Accessor, keys inject.Injector, verifier Verifier) *Fixer {
	f := &Fixer{
		cfg:      cfg,
		layouts:  layouts,
		clip:     clip,
		sel:      sel,
		keys:     keys,
		verifier: verifier,
	}
	f.trigger = f.schedule
	return f
}

// Run polls the input source until ctx is cancelled. Shutdown latency is
// bounded by one poll interval. A conversion in flight when ctx ends keeps
// running so its clipboard restoration completes; use Wait to join it.
func (f *Fixer) Run(ctx context.Context) error {
	prev, known := f.readLayout()
	if known {
		slog.Info("watcher started", "initial_layout", prev,
			"poll_interval", f.cfg.PollInterval.D())
	} else {
		slog.Info("watcher started", "initial_layout", "unknown",
			"poll_interval", f.cfg.PollInterval.D())
	}

	ticker := time.NewTicker(f.cfg.PollInterval.D())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			prev, known = f.pollOnce(prev, known)
		}
	}
}

// Wait blocks until any in-flight conversion has finished.
func (f *Fixer) Wait() {
	f.wg.Wait()
}

// pollOnce reads the current layout and fires one trigger when it differs
// from a known previous reading. An unreadable poll keeps the previous
// reading so a single bad read never invents a transition.
func (f *Fixer) pollOnce(prev layout.Layout, known bool) (layout.Layout, bool) {
	current, err := f.layouts.Current()
	if err != nil {
		slog.Debug("layout read failed", "error", err)
		return prev, known
	}

	if known && current != prev {
		slog.Info("layout changed", "from", prev, "to", current)
		f.trigger(current)
	}
	return current, true
}

// schedule starts a conversion for target unless one is already running.
// Check and set are a single atomic operation: two near-simultaneous
// transitions can never both pass the guard.
func (f *Fixer) schedule(target layout.Layout) {
	if !f.converting.CompareAndSwap(false, true) {
		slog.Debug("conversion skipped", "reason", "already active", "target", target)
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.convert(target)
	}()
}

func (f *Fixer) readLayout() (layout.Layout, bool) {
	current, err := f.layouts.Current()
	if err != nil {
		return 0, false
	}
	return current, true
}
