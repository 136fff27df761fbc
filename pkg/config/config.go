// Package config resolves godue's runtime settings from the environment
// and an optional TOML file.
//
// Precedence, lowest to highest: built-in defaults, the config file,
// environment variables. The file is optional; a missing file is not an
// error. Validation of output identifiers happens later, when the sink set
// is constructed, so that unrecognized outputs fail loudly in one place.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables recognized by godue.
const (
	// EnvEnable enables citation collection ("1", "true", "yes").
	// When unset or false, the inactive collector is selected.
	EnvEnable = "DUECREDIT_ENABLE"

	// EnvOutputs selects the teardown sinks as a comma-separated list of
	// identifiers ("stdout", "stderr", "pickle"). Default: "stdout".
	EnvOutputs = "DUECREDIT_OUTPUTS"

	// EnvFile sets the snapshot file path used by the "pickle" sink.
	EnvFile = "DUECREDIT_FILE"
)

// DefaultFile is the conventional config file name, looked up in the
// working directory by [Load] when no explicit path is given.
const DefaultFile = ".duecredit.toml"

// Config holds the resolved runtime settings.
type Config struct {
	// Enable selects the active collector; false means the no-op variant.
	Enable bool

	// Outputs is the comma-separated sink identifier list passed to the
	// sink factory.
	Outputs string

	// File is the snapshot path for the "pickle" sink. Empty means the
	// sink's own default (".duecredit.p").
	File string
}

// Default returns the built-in settings: collection disabled, stdout
// reporting only.
func Default() Config {
	return Config{Outputs: "stdout"}
}

// FromEnv resolves settings from the environment on top of the defaults,
// ignoring any config file.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// Load resolves settings from the TOML file at path (or [DefaultFile] when
// path is empty), then applies environment overrides. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		// optional file absent
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := cfg.applyTOML(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// fileConfig mirrors the TOML schema. Outputs is a list in the file even
// though Config carries it as a comma string, matching the env form.
type fileConfig struct {
	Enable  *bool    `toml:"enable"`
	Outputs []string `toml:"outputs"`
	File    string   `toml:"file"`
}

func (c *Config) applyTOML(data []byte) error {
	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Enable != nil {
		c.Enable = *f.Enable
	}
	if len(f.Outputs) > 0 {
		c.Outputs = strings.Join(f.Outputs, ",")
	}
	if f.File != "" {
		c.File = f.File
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvEnable); ok {
		c.Enable = parseBool(v)
	}
	if v, ok := os.LookupEnv(EnvOutputs); ok {
		c.Outputs = v
	}
	if v, ok := os.LookupEnv(EnvFile); ok {
		c.File = v
	}
}

// parseBool accepts strconv forms plus "yes"/"no". Unparseable values
// count as false rather than failing startup.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
