package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FORMSTATE_LOG_LEVEL.
const EnvPrefix = "FORMSTATE"

// ConfigName is the file name (without extension) searched for when no
// explicit config file is given.
const ConfigName = "formstate"

// Keys shared by flags, environment variables and config files.
const (
	KeySchema   = "schema"
	KeyRenderer = "renderer"
	KeyDriver   = "driver"
	KeyOutput   = "output"
	KeyOut      = "out"
	KeyLogLevel = "log-level"
)

var (
	Renderers = []string{"tui", "html"}
	Drivers   = []string{"survey", "huh"}
	Outputs   = []string{"json", "form", "pretty"}
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the CLI settings after flags, environment and file sources
// have been merged.
type Config struct {
	Schema   string `mapstructure:"schema"`
	Renderer string `mapstructure:"renderer"`
	Driver   string `mapstructure:"driver"`
	Output   string `mapstructure:"output"`
	Out      string `mapstructure:"out"`
	LogLevel string `mapstructure:"log-level"`
}

// Defaults returns the settings used when no source overrides them.
func Defaults() Config {
	return Config{
		Renderer: "tui",
		Driver:   "survey",
		Output:   "json",
		LogLevel: "warn",
	}
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind their flags before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeySchema, d.Schema)
	v.SetDefault(KeyRenderer, d.Renderer)
	v.SetDefault(KeyDriver, d.Driver)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyOut, d.Out)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes v. An explicit file must
// exist; without one, formstate.yaml is looked up in the working directory
// and skipped when missing.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{KeyRenderer, c.Renderer, Renderers},
		{KeyDriver, c.Driver, Drivers},
		{KeyOutput, c.Output, Outputs},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidConfig, check.key, check.value, strings.Join(check.allowed, ", "))
		}
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: %s %q", ErrInvalidConfig, KeyLogLevel, c.LogLevel)
	}
	return nil
}

// Level returns the configured hclog level.
func (c Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
