package config

import "time"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Poll:    DefaultPollConfig(),
		Resolve: DefaultResolveConfig(),
		Log:     DefaultLogConfig(),
	}
}

// DefaultPollConfig returns the default poller bounds.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		BaseDelay:   2 * time.Second,
		MaxDelay:    60 * time.Second,
		MaxAttempts: 30,
	}
}

// DefaultResolveConfig returns the default resolution settings.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{
		DegradeToEmpty: false,
	}
}

// DefaultLogConfig returns the default logging settings.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:       "info",
		Development: false,
	}
}
