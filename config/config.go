package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Poll    PollConfig    `yaml:"poll"`
	Resolve ResolveConfig `yaml:"resolve"`
	Log     LogConfig     `yaml:"log"`
}

// PollConfig bounds the job poller.
type PollConfig struct {
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
	MaxAttempts int           `yaml:"max_attempts"`
}

// UnmarshalYAML accepts delays in time.ParseDuration notation ("2s",
// "500ms") and leaves absent fields at their prior values.
func (p *PollConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseDelay   string `yaml:"base_delay"`
		MaxDelay    string `yaml:"max_delay"`
		MaxAttempts *int   `yaml:"max_attempts"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.BaseDelay != "" {
		d, err := time.ParseDuration(raw.BaseDelay)
		if err != nil {
			return fmt.Errorf("poll.base_delay: %w", err)
		}
		p.BaseDelay = d
	}
	if raw.MaxDelay != "" {
		d, err := time.ParseDuration(raw.MaxDelay)
		if err != nil {
			return fmt.Errorf("poll.max_delay: %w", err)
		}
		p.MaxDelay = d
	}
	if raw.MaxAttempts != nil {
		p.MaxAttempts = *raw.MaxAttempts
	}
	return nil
}

// ResolveConfig tunes output resolution.
type ResolveConfig struct {
	// DegradeToEmpty makes failed resolutions yield an empty object instead
	// of an error. Off by default; turning it on is an explicit caller
	// policy for non-fatal pipelines.
	DegradeToEmpty bool `yaml:"degrade_to_empty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Development switches to the human-readable console encoder.
	Development bool `yaml:"development"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field for sanity.
func (c *Config) Validate() error {
	if c.Poll.BaseDelay <= 0 {
		return fmt.Errorf("poll.base_delay must be positive, got %v", c.Poll.BaseDelay)
	}
	if c.Poll.MaxDelay < c.Poll.BaseDelay {
		return fmt.Errorf("poll.max_delay must be >= poll.base_delay, got %v < %v",
			c.Poll.MaxDelay, c.Poll.BaseDelay)
	}
	if c.Poll.MaxAttempts <= 0 {
		return fmt.Errorf("poll.max_attempts must be positive, got %d", c.Poll.MaxAttempts)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	return nil
}

// BuildLogger constructs a zap logger per the log configuration.
func (c LogConfig) BuildLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if c.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
