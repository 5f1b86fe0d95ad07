package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envVar maps one environment variable onto a setting.
type envVar struct {
	name  string
	path  string
	apply func(cfg *Config, value string) error
}

func str(set func(*Config, string)) func(*Config, string) error {
	return func(c *Config, v string) error {
		set(c, v)
		return nil
	}
}

// envMapping lists the supported PADKEYS_* variables.
var envMapping = []envVar{
	{"PADKEYS_LANGUAGES", "keyboard.languages", str(func(c *Config, v string) { c.Keyboard.Languages = splitList(v) })},
	{"PADKEYS_SYMBOLS", "keyboard.symbols", str(func(c *Config, v string) { c.Keyboard.Symbols = v })},
	{"PADKEYS_KEYMAP_DIR", "keyboard.keymap_dir", str(func(c *Config, v string) { c.Keyboard.KeymapDir = v })},
	{"PADKEYS_FLOATING", "keyboard.floating", func(c *Config, v string) error {
		b, err := parseBool(v)
		c.Keyboard.Floating = b
		return err
	}},
	{"PADKEYS_REPEAT_INTERVAL", "keyboard.repeat_interval", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.Keyboard.RepeatInterval = Duration{d}
		return err
	}},
	{"PADKEYS_DEVICE", "device.path", str(func(c *Config, v string) { c.Device.Path = v })},
	{"PADKEYS_SINK", "device.sink", str(func(c *Config, v string) { c.Device.Sink = v })},
	{"PADKEYS_LOG_LEVEL", "logging.level", str(func(c *Config, v string) { c.Logging.Level = v })},
	{"PADKEYS_LOG_FORMAT", "logging.format", str(func(c *Config, v string) { c.Logging.Format = v })},
	{"PADKEYS_LOG_FILE", "logging.file", str(func(c *Config, v string) { c.Logging.File = v })},
	{"PADKEYS_CLICK", "feedback.click", func(c *Config, v string) error {
		b, err := parseBool(v)
		c.Feedback.Click = b
		return err
	}},
	{"PADKEYS_VOLUME", "feedback.volume", func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		c.Feedback.Volume = f
		return err
	}},
}

// ApplyEnv overrides cfg with any PADKEYS_* variables that are set. Empty
// values are treated as set.
func ApplyEnv(cfg *Config) error {
	for _, ev := range envMapping {
		v, ok := os.LookupEnv(ev.name)
		if !ok {
			continue
		}
		if err := ev.apply(cfg, strings.TrimSpace(v)); err != nil {
			return &ParseError{
				Path:    ev.name,
				Message: fmt.Sprintf("invalid value %q for %s", v, ev.path),
				Err:     err,
			}
		}
	}
	return nil
}

// EnvVars returns the supported environment variables and the setting each
// one overrides.
func EnvVars() map[string]string {
	out := make(map[string]string, len(envMapping))
	for _, ev := range envMapping {
		out[ev.name] = ev.path
	}
	return out
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
