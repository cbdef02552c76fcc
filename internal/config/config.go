// Package config loads slidetimer settings from flags, SLIDETIMER_*
// environment variables and an optional slidetimer.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AppName   = "slidetimer"
	EnvPrefix = "SLIDETIMER"

	// LanguageAuto resolves the display language from the environment and
	// the template text.
	LanguageAuto = "auto"
)

// Config keys, also used as flag names with '_' replaced by '-'.
const (
	KeyDB       = "db"
	KeyLanguage = "language"
	KeyInterval = "interval"
	KeyModeFile = "mode_file"
	KeyLogLevel = "log_level"
	KeyTimezone = "timezone"
)

type Config struct {
	DB       string        `mapstructure:"db"`
	Language string        `mapstructure:"language"`
	Interval time.Duration `mapstructure:"interval"`
	ModeFile string        `mapstructure:"mode_file"`
	LogLevel string        `mapstructure:"log_level"`
	Timezone string        `mapstructure:"timezone"`
}

// Dir returns the per-user configuration directory for slidetimer.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(base, AppName)
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDB, filepath.Join(Dir(), AppName+".db"))
	v.SetDefault(KeyLanguage, "")
	v.SetDefault(KeyInterval, time.Second)
	v.SetDefault(KeyModeFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimezone, "")
}

// Load reads the config file (file, or slidetimer.yaml in Dir() when file is
// empty), layers environment variables on top and decodes the result. A
// missing default config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be coerced.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured time zone, or time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LanguageOverride returns the configured language when it pins a locale
// code, and "" when the stored preference should be used.
func (c *Config) LanguageOverride() string {
	return strings.ToLower(strings.TrimSpace(c.Language))
}
