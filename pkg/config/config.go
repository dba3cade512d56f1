// Package config provides configuration loading and validation for the
// odingen CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrEmptyOverrideName = errors.New("builtin override with empty name")
	ErrEmptyOverrideExpr = errors.New("builtin override with empty expression")
	ErrBadEnumPrefix     = errors.New("enum prefix must end with an underscore")
	ErrEmptyReservedWord = errors.New("reserved word remap with empty key")
	ErrInvalidLogFormat  = errors.New("logging format must be text or json")
)

// Default generator settings.
const (
	defaultStripPrefix       = "oc_"
	defaultLinkPrefix        = "oc_"
	defaultCallingConvention = "c"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
)

// Config holds all configuration for the odingen CLI.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Tables    TablesConfig    `mapstructure:"tables"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GeneratorConfig holds the linkage and naming settings.
type GeneratorConfig struct {
	StripPrefix       string `mapstructure:"strip_prefix"`
	LinkPrefix        string `mapstructure:"link_prefix"`
	CallingConvention string `mapstructure:"calling_convention"`
}

// TablesConfig extends the built-in lookup tables. Entries merge over the
// defaults; they never replace whole tables.
type TablesConfig struct {
	BuiltinOverrides     map[string]string `mapstructure:"builtin_overrides"`
	EnumPrefixesSpecific []string          `mapstructure:"enum_prefixes_specific"`
	EnumPrefixesBroad    []string          `mapstructure:"enum_prefixes_broad"`
	ReservedWords        map[string]string `mapstructure:"reserved_words"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from the given file path. An empty path
// loads defaults only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("generator.strip_prefix", defaultStripPrefix)
	v.SetDefault("generator.link_prefix", defaultLinkPrefix)
	v.SetDefault("generator.calling_convention", defaultCallingConvention)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for entries the generator cannot use.
func (c *Config) Validate() error {
	for name, expr := range c.Tables.BuiltinOverrides {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyOverrideName
		}

		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyOverrideExpr, name)
		}
	}

	for _, prefix := range append(append([]string{}, c.Tables.EnumPrefixesSpecific...), c.Tables.EnumPrefixesBroad...) {
		if !strings.HasSuffix(prefix, "_") {
			return fmt.Errorf("%w: %s", ErrBadEnumPrefix, prefix)
		}
	}

	for word := range c.Tables.ReservedWords {
		if strings.TrimSpace(word) == "" {
			return ErrEmptyReservedWord
		}
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}
