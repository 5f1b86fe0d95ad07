// Package config loads padkeys settings from a TOML file and the environment.
//
// Sources are applied in order: built-in defaults, the config file, then
// PADKEYS_* environment variables. Validate checks the merged result.
//
//	[keyboard]
//	languages = ["english", "spanish"]
//	symbols = "symbols"
//	floating = true
//	repeat_interval = "200ms"
//
//	[bindings]
//	r1 = "word_gap"
//	start = "confirm"
//	select = "key:escape"
//
//	[device]
//	path = "/dev/input/event12"
//	sink = "uinput"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink names accepted by device.sink.
const (
	SinkUinput  = "uinput"
	SinkRobotgo = "robotgo"
)

// Config is the complete padkeys configuration.
type Config struct {
	Keyboard KeyboardConfig `toml:"keyboard"`
	// Bindings overrides the default button actions: button name -> action.
	Bindings map[string]string `toml:"bindings"`
	Device   DeviceConfig      `toml:"device"`
	Logging  LoggingConfig     `toml:"logging"`
	Feedback FeedbackConfig    `toml:"feedback"`
}

// KeyboardConfig selects keymaps and presentation.
type KeyboardConfig struct {
	// Languages is the ordered list of language keymap ids to cycle through.
	Languages []string `toml:"languages"`
	// Symbols is the keymap id used in symbol mode.
	Symbols string `toml:"symbols"`
	// KeymapDir holds user keymaps that shadow the built-in layouts.
	KeymapDir string `toml:"keymap_dir"`
	// Floating selects the overlay window over the docked terminal view.
	Floating bool `toml:"floating"`
	// RepeatInterval is the navigation key repeat interval.
	RepeatInterval Duration `toml:"repeat_interval"`
}

// DeviceConfig selects the gamepad and the output sink.
type DeviceConfig struct {
	// Path is an evdev device node. Empty picks the first gamepad found.
	Path string `toml:"path"`
	// Sink is "uinput" or "robotgo".
	Sink string `toml:"sink"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// File redirects logs away from the terminal.
	File string `toml:"file"`
}

// FeedbackConfig configures the key click.
type FeedbackConfig struct {
	Click  bool    `toml:"click"`
	Volume float64 `toml:"volume"`
}

// Duration is a time.Duration written as a string such as "200ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Keyboard: KeyboardConfig{
			Languages:      []string{"english"},
			Symbols:        "symbols",
			KeymapDir:      filepath.Join(Dir(), "keymaps"),
			Floating:       true,
			RepeatInterval: Duration{200 * time.Millisecond},
		},
		Bindings: map[string]string{},
		Device: DeviceConfig{
			Sink: SinkUinput,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Feedback: FeedbackConfig{
			Volume: 0.3,
		},
	}
}

// Dir returns the padkeys configuration directory.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "padkeys")
	}
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "padkeys")
	}
	return ".padkeys"
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}
