package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "PADKEYS_CONFIG"

// Load builds the configuration from defaults, the config file and the
// environment, then validates it.
//
// path is the file given on the command line. When empty, $PADKEYS_CONFIG is
// tried and then DefaultPath. A missing default file is not an error; a
// missing explicit file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfigPath); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, path, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML data onto cfg. Keys absent from data keep their current
// values. Unknown keys are an error.
func Decode(data []byte, source string, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			pe.Line, pe.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			pe.Line, pe.Column = serr.Errors[0].Position()
			pe.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return pe
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
