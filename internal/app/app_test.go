package app

import (
	"errors"
	"testing"
	"time"

	"layfix/clipboard"
	"layfix/config"
	"layfix/inputsource"
	"layfix/layout"
	"layfix/selection"
)

// fakeReader replays a script of layout readings; the last entry repeats.
type fakeReader struct {
	layouts []layout.Layout
	errs    []error
	idx     int
}

func (r *fakeReader) Current() (layout.Layout, error) {
	if len(r.layouts) == 0 {
		return 0, inputsource.ErrUnknown
	}
	i := r.idx
	if i >= len(r.layouts) {
		i = len(r.layouts) - 1
	} else {
		r.idx++
	}
	if i < len(r.errs) && r.errs[i] != nil {
		return 0, r.errs[i]
	}
	return r.layouts[i], nil
}

// scriptClipboard replays a fixed read script (last entry repeats) and
// records writes.
type scriptClipboard struct {
	reads    []string
	readErrs []error
	idx      int
	writes   []string
	writeErr error
}

func (c *scriptClipboard) Read() (string, error) {
	if len(c.reads) == 0 {
		return "", errors.New("clipboard unreadable")
	}
	i := c.idx
	if i >= len(c.reads) {
		i = len(c.reads) - 1
	} else {
		c.idx++
	}
	if i < len(c.readErrs) && c.readErrs[i] != nil {
		return "", c.readErrs[i]
	}
	return c.reads[i], nil
}

func (c *scriptClipboard) Write(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, text)
	return nil
}

// echoClipboard behaves like a clipboard nothing else writes to: reads
// return whatever was written last.
type echoClipboard struct {
	content string
	writes  []string
}

func (c *echoClipboard) Read() (string, error) {
	return c.content, nil
}

func (c *echoClipboard) Write(text string) error {
	c.content = text
	c.writes = append(c.writes, text)
	return nil
}

type fakeSelection struct {
	text     string
	readErr  error
	writeErr error
	written  []string
}

func (s *fakeSelection) ReadSelected() (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	return s.text, nil
}

func (s *fakeSelection) WriteSelected(text string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = append(s.written, text)
	return nil
}

type fakeInjector struct {
	copies    int
	pastes    int
	lowLevels int
	lowErr    error
}

func (i *fakeInjector) Copy() error  { i.copies++; return nil }
func (i *fakeInjector) Paste() error { i.pastes++; return nil }
func (i *fakeInjector) CopyLowLevel() error {
	i.lowLevels++
	return i.lowErr
}

// panicVerifier stands in for an unexpected fault inside a conversion.
type panicVerifier struct{}

func (panicVerifier) Matches(string, layout.Layout) bool {
	panic("verifier exploded")
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SettleDelay = 0
	cfg.LayoutSwitchSettleDelay = 0
	cfg.PasteRestoreDelay = 0
	cfg.CopyWaitTimeout = config.Duration(50 * time.Millisecond)
	cfg.CopyPollInterval = config.Duration(time.Millisecond)
	return cfg
}

func newTestFixer(reader *fakeReader, clip clipboard.Clipboard, sel *fakeSelection, keys *fakeInjector) *Fixer {
	if reader == nil {
		reader = &fakeReader{}
	}
	if sel == nil {
		sel = &fakeSelection{readErr: selection.ErrUnavailable}
	}
	if keys == nil {
		keys = &fakeInjector{}
	}
	return New(testConfig(), reader, clip, sel, keys, nil)
}

func TestPollOnceDetectsSwitch(t *testing.T) {
	f := newTestFixer(&fakeReader{layouts: []layout.Layout{layout.RU}}, &echoClipboard{}, nil, nil)
	var triggered []layout.Layout
	f.trigger = func(target layout.Layout) { triggered = append(triggered, target) }

	current, known := f.pollOnce(layout.EN, true)

	if current != layout.RU || !known {
		t.Fatalf("pollOnce() = (%v, %v), want (RU, true)", current, known)
	}
	if len(triggered) != 1 || triggered[0] != layout.RU {
		t.Errorf("triggered = %v, want exactly one RU trigger", triggered)
	}
}

func TestPollOnceSameLayoutDoesNotTrigger(t *testing.T) {
	f := newTestFixer(&fakeReader{layouts: []layout.Layout{layout.EN}}, &echoClipboard{}, nil, nil)
	var triggered []layout.Layout
	f.trigger = func(target layout.Layout) { triggered = append(triggered, target) }

	current, known := f.pollOnce(layout.EN, true)

	if current != layout.EN || !known {
		t.Fatalf("pollOnce() = (%v, %v), want (EN, true)", current, known)
	}
	if len(triggered) != 0 {
		t.Errorf("triggered = %v, want none", triggered)
	}
}

func TestPollOnceUnreadableKeepsPrevious(t *testing.T) {
	f := newTestFixer(&fakeReader{
		layouts: []layout.Layout{0},
		errs:    []error{inputsource.ErrUnknown},
	}, &echoClipboard{}, nil, nil)
	var triggered []layout.Layout
	f.trigger = func(target layout.Layout) { triggered = append(triggered, target) }

	current, known := f.pollOnce(layout.EN, true)

	if current != layout.EN || !known {
		t.Fatalf("pollOnce() = (%v, %v), want previous reading kept", current, known)
	}
	if len(triggered) != 0 {
		t.Errorf("triggered = %v, want none", triggered)
	}
}

func TestPollOnceInitialReadingNeverTriggers(t *testing.T) {
	f := newTestFixer(&fakeReader{layouts: []layout.Layout{layout.RU}}, &echoClipboard{}, nil, nil)
	var triggered []layout.Layout
	f.trigger = func(target layout.Layout) { triggered = append(triggered, target) }

	current, known := f.pollOnce(0, false)

	if current != layout.RU || !known {
		t.Fatalf("pollOnce() = (%v, %v), want (RU, true)", current, known)
	}
	if len(triggered) != 0 {
		t.Errorf("triggered = %v, want none on the first known reading", triggered)
	}
}

func TestScheduleDropsTriggerWhileActive(t *testing.T) {
	sel := &fakeSelection{text: "ghbdtn"}
	f := newTestFixer(nil, &echoClipboard{}, sel, nil)
	f.converting.Store(true)

	f.schedule(layout.RU)
	f.Wait()

	if len(sel.written) != 0 {
		t.Errorf("selection written = %v, want untouched", sel.written)
	}
	if !f.converting.Load() {
		t.Error("guard was released by a dropped trigger")
	}
}

func TestScheduleRunsConversionAndReleasesGuard(t *testing.T) {
	sel := &fakeSelection{text: "ghbdtn"}
	f := newTestFixer(nil, &echoClipboard{}, sel, nil)

	f.schedule(layout.RU)
	f.Wait()

	if f.converting.Load() {
		t.Error("guard still held after conversion finished")
	}
	if len(sel.written) != 1 || sel.written[0] != "привет" {
		t.Errorf("selection written = %v, want [привет]", sel.written)
	}
}
