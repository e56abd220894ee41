// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	appName        = "layfix"
	configFileName = "config.json"
)

// Duration marshals as a Go duration string ("120ms"). For migration it also
// accepts the bare integer-milliseconds form earlier releases wrote.
type Duration time.Duration

// D returns the wrapped time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value) * time.Millisecond)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse duration: %w", err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// Config represents the application configuration. All delays are real-time
// waits standing in for OS notifications that do not exist; their defaults
// are tuned against macOS clipboard and input-source timing.
type Config struct {
	// PollInterval is how often the input source is read.
	PollInterval Duration `json:"poll_interval"`
	// SettleDelay is the wait around copy/paste letting the clipboard and
	// the target app settle.
	SettleDelay Duration `json:"settle_delay"`
	// LayoutSwitchSettleDelay is the wait after a layout switch before the
	// selection is captured.
	LayoutSwitchSettleDelay Duration `json:"layout_switch_settle_delay"`
	// CopyWaitTimeout bounds the wait for the clipboard to change after the
	// copy keystroke.
	CopyWaitTimeout Duration `json:"copy_wait_timeout"`
	// CopyPollInterval is the clipboard polling period inside that wait.
	CopyPollInterval Duration `json:"copy_poll_interval"`
	// PasteRestoreDelay is the wait after a paste before the clipboard is
	// restored. Best effort: apps that paste asynchronously need the
	// clipboard to survive until they have read it.
	PasteRestoreDelay Duration `json:"paste_restore_delay"`
	// VerifyLanguage skips replacements whose result does not read as the
	// target layout's language.
	VerifyLanguage bool `json:"verify_language"`
	// DebugEvents enables per-stage debug logging.
	DebugEvents bool `json:"debug_events"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		PollInterval:            Duration(100 * time.Millisecond),
		SettleDelay:             Duration(20 * time.Millisecond),
		LayoutSwitchSettleDelay: Duration(120 * time.Millisecond),
		CopyWaitTimeout:         Duration(350 * time.Millisecond),
		CopyPollInterval:        Duration(30 * time.Millisecond),
		PasteRestoreDelay:       Duration(200 * time.Millisecond),
	}
}

// Load loads configuration from the config file.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal over defaults so absent fields keep their stock values.
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Normalize clamps values the pipeline cannot work with back to their
// defaults: negative delays, and non-positive polling intervals that would
// spin or stall the tickers.
func (c *Config) Normalize() {
	def := Default()
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = def.SettleDelay
	}
	if c.LayoutSwitchSettleDelay < 0 {
		c.LayoutSwitchSettleDelay = def.LayoutSwitchSettleDelay
	}
	if c.CopyWaitTimeout < 0 {
		c.CopyWaitTimeout = def.CopyWaitTimeout
	}
	if c.CopyPollInterval <= 0 {
		c.CopyPollInterval = def.CopyPollInterval
	}
	if c.PasteRestoreDelay < 0 {
		c.PasteRestoreDelay = def.PasteRestoreDelay
	}
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}
