package app

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"layfix/layout"
)

const previewLimit = 120

// convert runs one capture→transform→replace cycle. The in-flight guard is
// already held by the caller; it is released here on every exit path,
// including panics, after the clipboard snapshot (if any) was restored.
func (f *Fixer) convert(target layout.Layout) {
	defer f.converting.Store(false)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("conversion panicked", "target", target, "panic", r)
		}
	}()

	slog.Debug("conversion started", "target", target)

	// The OS needs a moment to finish applying the switch before the
	// selection is readable; no event exists to wait on.
	time.Sleep(f.cfg.LayoutSwitchSettleDelay.D())

	text, snapshot := f.captureSelection()
	defer f.restoreClipboard(snapshot)

	if text == "" {
		slog.Info("no selection")
		return
	}

	// AX and pasteboard reads can hand back decomposed runes that would
	// miss the Cyrillic table.
	text = norm.NFC.String(text)

	converted, err := layout.Transform(text, target)
	if err != nil {
		slog.Error("transform failed", "target", target, "error", err)
		return
	}
	if converted == text {
		slog.Info("selection unchanged", "text", preview(text))
		return
	}
	if f.verifier != nil && !f.verifier.Matches(converted, target) {
		slog.Info("conversion skipped", "reason", "result not in target language",
			"target", target, "converted", preview(converted))
		return
	}

	replaced := f.replaceSelection(converted)
	slog.Info("selection converted", "target", target, "success", replaced,
		"original", preview(text), "converted", preview(converted))
}

// captureSelection returns the selected text and, when the clipboard had to
// be used as scratch space, a snapshot of its pre-capture content. A nil
// snapshot means there is nothing to restore.
func (f *Fixer) captureSelection() (string, *string) {
	if text, err := f.sel.ReadSelected(); err == nil && text != "" {
		slog.Debug("selection captured", "method", "ax", "len", len(text))
		return text, nil
	}

	var snapshot *string
	if prev, err := f.clip.Read(); err == nil {
		snapshot = &prev
	}

	marker := "layfix-marker-" + uuid.NewString()
	if err := f.clip.Write(marker); err != nil {
		slog.Debug("selection capture failed", "reason", "marker write failed", "error", err)
		return "", snapshot
	}

	time.Sleep(f.cfg.SettleDelay.D())
	if err := f.keys.Copy(); err != nil {
		slog.Debug("copy keystroke failed", "error", err)
	}

	copied, ok := f.waitForClipboardChange(marker)
	if !ok {
		slog.Debug("selection capture empty", "reason", "clipboard not updated")
		return "", snapshot
	}

	slog.Debug("selection captured", "method", "clipboard", "len", len(copied))
	return copied, snapshot
}

// waitForClipboardChange polls the clipboard until it no longer holds
// marker. After the first unsuccessful poll the low-level copy injector
// fires once, then polling continues against the same deadline. External
// clipboard writes emit no notification, so a bounded poll is the only
// option.
func (f *Fixer) waitForClipboardChange(marker string) (string, bool) {
	deadline := time.Now().Add(f.cfg.CopyWaitTimeout.D())
	triedFallback := false

	for time.Now().Before(deadline) {
		time.Sleep(f.cfg.CopyPollInterval.D())

		copied, err := f.clip.Read()
		if err == nil && copied != marker {
			return copied, true
		}

		if !triedFallback {
			triedFallback = true
			if err := f.keys.CopyLowLevel(); err != nil {
				slog.Debug("low-level copy fallback unavailable", "error", err)
			} else {
				slog.Debug("copy fallback sent", "method", "low-level")
			}
		}
	}
	return "", false
}

// replaceSelection writes text over the current selection, preferring the
// accessibility path and falling back to a clipboard paste.
func (f *Fixer) replaceSelection(text string) bool {
	if err := f.sel.WriteSelected(text); err == nil {
		slog.Debug("selection replaced", "method", "ax")
		return true
	}

	if err := f.clip.Write(text); err != nil {
		slog.Debug("selection replace failed", "reason", "clipboard write failed", "error", err)
		return false
	}

	time.Sleep(f.cfg.SettleDelay.D())
	if err := f.keys.Paste(); err != nil {
		slog.Debug("paste keystroke failed", "error", err)
		return false
	}

	// The target app may paste asynchronously; the clipboard has to survive
	// until it has been read. A fixed margin is the best that exists.
	time.Sleep(f.cfg.PasteRestoreDelay.D())

	slog.Debug("selection replaced", "method", "clipboard")
	return true
}

// restoreClipboard puts the pre-capture clipboard content back. It runs on
// every exit path of a conversion that recorded a snapshot.
func (f *Fixer) restoreClipboard(snapshot *string) {
	if snapshot == nil {
		return
	}
	if err := f.clip.Write(*snapshot); err != nil {
		slog.Warn("restore clipboard failed", "error", err)
		return
	}
	slog.Debug("clipboard restored", "restored", preview(*snapshot))
}

// preview compacts text for logging: newlines escaped, long values cut.
func preview(text string) string {
	compact := strings.ReplaceAll(text, "\n", "\\n")
	if utf8.RuneCountInString(compact) <= previewLimit {
		return compact
	}
	return string([]rune(compact)[:previewLimit]) + "..."
}
