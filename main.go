// Command layfix watches the macOS keyboard input source and, when it
// switches between the Latin and Cyrillic layouts, transliterates the
// currently selected text in place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"layfix/clipboard"
	"layfix/config"
	"layfix/inject"
	"layfix/inputsource"
	"layfix/internal/app"
	"layfix/langdetect"
	"layfix/selection"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = config.Default()
	}

	// Flags default to the loaded config, so each option is overridable
	// per invocation without touching the file.
	pollInterval := flag.Duration("poll-interval", cfg.PollInterval.D(),
		"how often to poll the current input source")
	settleDelay := flag.Duration("settle-delay", cfg.SettleDelay.D(),
		"delay around copy/paste to let the clipboard and app settle")
	switchSettleDelay := flag.Duration("layout-switch-settle-delay", cfg.LayoutSwitchSettleDelay.D(),
		"delay after a layout switch before capturing the selection")
	copyWaitTimeout := flag.Duration("copy-wait-timeout", cfg.CopyWaitTimeout.D(),
		"how long to wait for a clipboard update after the copy keystroke")
	copyPollInterval := flag.Duration("copy-poll-interval", cfg.CopyPollInterval.D(),
		"clipboard polling interval while waiting for the copy")
	pasteRestoreDelay := flag.Duration("paste-restore-delay", cfg.PasteRestoreDelay.D(),
		"delay before restoring the clipboard after a paste")
	verifyLanguage := flag.Bool("verify-language", cfg.VerifyLanguage,
		"skip replacements whose result does not read as the target language")
	debugEvents := flag.Bool("debug-events", cfg.DebugEvents,
		"enable detailed event logs for polling and clipboard operations")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("layfix %s (%s, %s)\n", version, commit, date)
		return nil
	}

	cfg.PollInterval = config.Duration(*pollInterval)
	cfg.SettleDelay = config.Duration(*settleDelay)
	cfg.LayoutSwitchSettleDelay = config.Duration(*switchSettleDelay)
	cfg.CopyWaitTimeout = config.Duration(*copyWaitTimeout)
	cfg.CopyPollInterval = config.Duration(*copyPollInterval)
	cfg.PasteRestoreDelay = config.Duration(*pasteRestoreDelay)
	cfg.VerifyLanguage = *verifyLanguage
	cfg.DebugEvents = *debugEvents
	cfg.Normalize()

	level := slog.LevelInfo
	if cfg.DebugEvents {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier app.Verifier
	if cfg.VerifyLanguage {
		verifier = langdetect.New()
	}

	fixer := app.New(cfg, inputsource.New(), clipboard.System{}, selection.New(), inject.Keyboard{}, verifier)

	slog.Info("layfix started", "version", version, "pid", os.Getpid())
	err = fixer.Run(ctx)

	// Let an in-flight conversion finish restoring the clipboard.
	fixer.Wait()
	return err
}
