package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")
	os.Unsetenv(EnvConfigPath)
	for name := range EnvVars() {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestDefaultIsValid(t *testing.T) {
	isolate(t)
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"english"}, cfg.Keyboard.Languages)
	assert.Equal(t, "symbols", cfg.Keyboard.Symbols)
	assert.True(t, cfg.Keyboard.Floating)
	assert.Equal(t, 200*time.Millisecond, cfg.Keyboard.RepeatInterval.Duration)
	assert.Equal(t, SinkUinput, cfg.Device.Sink)
	assert.Equal(t, filepath.Join(Dir(), "keymaps"), cfg.Keyboard.KeymapDir)
}

func TestDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/padkeys", Dir())
	assert.Equal(t, "/tmp/xdg/padkeys/config.toml", DefaultPath())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	p := writeConfig(t, `
[keyboard]
languages = ["spanish", "english"]
floating = false
repeat_interval = "150ms"

[bindings]
start = "confirm"

[device]
sink = "robotgo"

[feedback]
click = true
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"spanish", "english"}, cfg.Keyboard.Languages)
	assert.False(t, cfg.Keyboard.Floating)
	assert.Equal(t, 150*time.Millisecond, cfg.Keyboard.RepeatInterval.Duration)
	assert.Equal(t, "symbols", cfg.Keyboard.Symbols)
	assert.Equal(t, SinkRobotgo, cfg.Device.Sink)
	assert.True(t, cfg.Feedback.Click)
	assert.InDelta(t, 0.3, cfg.Feedback.Volume, 1e-9)

	b, err := cfg.ParsedBindings()
	require.NoError(t, err)
	assert.Len(t, b, 8)
}

func TestLoadFromEnvPath(t *testing.T) {
	isolate(t)
	p := writeConfig(t, "[keyboard]\nsymbols = \"mysymbols\"\n")
	t.Setenv(EnvConfigPath, p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysymbols", cfg.Keyboard.Symbols)
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		line bool
	}{
		{"syntax", "[keyboard\nlanguages = 1", "", true},
		{"unknown key", "[keyboard]\ncolour = \"red\"\n", "unknown setting keyboard.colour", true},
		{"wrong type", "[keyboard]\nfloating = \"maybe\"\n", "", false},
		{"bad duration", "[keyboard]\nrepeat_interval = \"soon\"\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.body))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			if tt.line {
				assert.Positive(t, pe.Line)
			}
			if tt.want != "" {
				assert.Contains(t, pe.Error(), tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	p := writeConfig(t, "[keyboard]\nlanguages = [\"english\"]\n")
	t.Setenv("PADKEYS_LANGUAGES", "spanish, english,")
	t.Setenv("PADKEYS_FLOATING", "no")
	t.Setenv("PADKEYS_REPEAT_INTERVAL", "1s")
	t.Setenv("PADKEYS_LOG_LEVEL", "debug")
	t.Setenv("PADKEYS_VOLUME", "0.5")
	t.Setenv("PADKEYS_CLICK", "on")
	t.Setenv("PADKEYS_DEVICE", "/dev/input/event3")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"spanish", "english"}, cfg.Keyboard.Languages)
	assert.False(t, cfg.Keyboard.Floating)
	assert.Equal(t, time.Second, cfg.Keyboard.RepeatInterval.Duration)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.InDelta(t, 0.5, cfg.Feedback.Volume, 1e-9)
	assert.True(t, cfg.Feedback.Click)
	assert.Equal(t, "/dev/input/event3", cfg.Device.Path)
}

func TestEnvParseError(t *testing.T) {
	isolate(t)
	t.Setenv("PADKEYS_VOLUME", "loud")

	_, err := Load("")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "PADKEYS_VOLUME", pe.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		path   string
		code   ValidationErrorCode
	}{
		{"no languages", func(c *Config) { c.Keyboard.Languages = nil }, "keyboard.languages", ErrCodeRequiredMissing},
		{"blank language", func(c *Config) { c.Keyboard.Languages = []string{"english", ""} }, "keyboard.languages", ErrCodeRequiredMissing},
		{"zero interval", func(c *Config) { c.Keyboard.RepeatInterval = Duration{} }, "keyboard.repeat_interval", ErrCodeOutOfRange},
		{"bad sink", func(c *Config) { c.Device.Sink = "morse" }, "device.sink", ErrCodeInvalidEnum},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level", ErrCodeInvalidEnum},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format", ErrCodeInvalidEnum},
		{"volume high", func(c *Config) { c.Feedback.Volume = 1.5 }, "feedback.volume", ErrCodeOutOfRange},
		{"face binding", func(c *Config) { c.Bindings = map[string]string{"a": "erase"} }, "bindings.a", ErrCodeInvalidBinding},
		{"unknown action", func(c *Config) { c.Bindings = map[string]string{"l1": "launch"} }, "bindings.l1", ErrCodeInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.path, ve.Path)
			assert.Equal(t, tt.code, ve.Code)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestEmptyLanguagesMessage(t *testing.T) {
	cfg := Default()
	cfg.Keyboard.Languages = []string{}
	assert.EqualError(t, cfg.Validate(), "keyboard.languages: must have at least one language selected")
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Keyboard.Languages = []string{"english", "spanish"}
	cfg.Bindings = map[string]string{"start": "confirm"}

	data, err := Encode(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "repeat_interval")
	assert.Contains(t, string(data), "200ms")

	got := Default()
	require.NoError(t, Decode(data, "roundtrip", got))
	assert.Equal(t, cfg, got)
}

func TestValidationErrorCodeString(t *testing.T) {
	assert.Equal(t, "invalid_binding", ErrCodeInvalidBinding.String())
	assert.Equal(t, "unknown", ValidationErrorCode(99).String())
}
