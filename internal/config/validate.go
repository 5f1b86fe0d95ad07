package config

import (
	"errors"

	"github.com/dshills/padkeys/internal/logging"
	"github.com/dshills/padkeys/internal/machine"
)

// Validate checks the configuration and returns the first problem as a
// *ValidationError.
func (c *Config) Validate() error {
	if len(c.Keyboard.Languages) == 0 {
		return &ValidationError{
			Path:    "keyboard.languages",
			Message: "must have at least one language selected",
			Code:    ErrCodeRequiredMissing,
		}
	}
	for _, id := range c.Keyboard.Languages {
		if id == "" {
			return &ValidationError{
				Path:    "keyboard.languages",
				Message: "language ids must not be empty",
				Value:   c.Keyboard.Languages,
				Code:    ErrCodeRequiredMissing,
			}
		}
	}
	if c.Keyboard.RepeatInterval.Duration <= 0 {
		return &ValidationError{
			Path:    "keyboard.repeat_interval",
			Message: "must be positive",
			Value:   c.Keyboard.RepeatInterval.Duration,
			Code:    ErrCodeOutOfRange,
		}
	}

	switch c.Device.Sink {
	case SinkUinput, SinkRobotgo:
	default:
		return &ValidationError{
			Path:    "device.sink",
			Message: "must be uinput or robotgo",
			Value:   c.Device.Sink,
			Code:    ErrCodeInvalidEnum,
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be trace, debug, info, warn or error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ValidationError{
			Path:    "logging.format",
			Message: "must be console or json",
			Value:   c.Logging.Format,
			Code:    ErrCodeInvalidEnum,
		}
	}

	if c.Feedback.Volume < 0 || c.Feedback.Volume > 1 {
		return &ValidationError{
			Path:    "feedback.volume",
			Message: "must be between 0 and 1",
			Value:   c.Feedback.Volume,
			Code:    ErrCodeOutOfRange,
		}
	}

	if _, err := c.ParsedBindings(); err != nil {
		ve := &ValidationError{Path: "bindings", Message: err.Error(), Code: ErrCodeInvalidBinding}
		var be *machine.BindingError
		if errors.As(err, &be) {
			ve.Path = "bindings." + be.Button
			ve.Message = be.Err.Error()
			ve.Value = c.Bindings[be.Button]
		}
		return ve
	}
	return nil
}

// ParsedBindings returns the default bindings with the configured overrides
// applied.
func (c *Config) ParsedBindings() (machine.Bindings, error) {
	return machine.ParseBindings(c.Bindings)
}
