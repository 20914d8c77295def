package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/username/month-grid/pkg/dateutil"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents application configuration
type Config struct {
	Grid   GridConfig   `mapstructure:"grid"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// GridConfig represents how the reference date is obtained
type GridConfig struct {
	ReferenceDate string `mapstructure:"reference_date"` // Empty means today
	Timezone      string `mapstructure:"timezone"`       // IANA name, "Local" or "UTC"
}

// OutputConfig represents rendering options
type OutputConfig struct {
	Format string `mapstructure:"format"` // "text", "json" or "yaml"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // Empty logs to console
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and MONTHGRID_* environment variables.
// With an empty path a missing config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.month-grid")
		v.AddConfigPath("/etc/month-grid")
	}

	// Read environment variables
	v.SetEnvPrefix("MONTHGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.reference_date", "")
	v.SetDefault("grid.timezone", "Local")
	v.SetDefault("output.format", FormatText)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Grid config
	loc, err := c.Grid.GetLocation()
	if err != nil {
		return fmt.Errorf("grid.timezone is invalid: %w", err)
	}
	if c.Grid.ReferenceDate != "" {
		if _, err := dateutil.ParseDateIn(c.Grid.ReferenceDate, loc); err != nil {
			return fmt.Errorf("grid.reference_date is invalid: %w", err)
		}
	}

	// Validate Output config
	if err := ValidateFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	// Validate Log config
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level is invalid: %w", err)
	}

	return nil
}

// ValidateFormat checks that format names a supported output format
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("must be '%s', '%s' or '%s', got '%s'", FormatText, FormatJSON, FormatYAML, format)
	}
}

// GetLocation returns the configured time zone, defaulting to the local one
func (g *GridConfig) GetLocation() (*time.Location, error) {
	if g.Timezone == "" || g.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(g.Timezone)
}

// GetReferenceDate returns the configured reference date, or the date of now
// in the configured time zone when none is set
func (g *GridConfig) GetReferenceDate(now time.Time) (time.Time, error) {
	loc, err := g.GetLocation()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone %q: %w", g.Timezone, err)
	}

	if g.ReferenceDate == "" {
		return dateutil.StartOfDay(now.In(loc)), nil
	}

	ref, err := dateutil.ParseDateIn(g.ReferenceDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse reference date: %w", err)
	}
	return ref, nil
}

// GetLevel returns the zap level, defaulting to info
func (l *LogConfig) GetLevel() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
