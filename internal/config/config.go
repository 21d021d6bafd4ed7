// Package config holds the settings of the elimination command line tool.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the content of the optional configuration file. Command line
// flags override every field.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`

	// Trace routes engine events into the log at debug level.
	Trace bool `yaml:"trace"`

	// Workers bounds how many puzzles the batch command solves at once.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`

	// MetricsFile, when set, receives solver metrics in the Prometheus
	// text format after a batch run.
	MetricsFile string `yaml:"metrics_file"`

	// Color is one of auto, always or never.
	Color string `yaml:"color" validate:"oneof=auto always never"`

	// Debounce is how long the watch command waits for writes to settle.
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Workers:  4,
		Color:    "auto",
		Debounce: 200 * time.Millisecond,
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}
