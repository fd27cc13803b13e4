package config

import "withefuck/internal/logging"

// LoggingOptions maps debug_mode and log_level onto logging.Options.
// Returns a silent configuration if debug_mode is false (production mode).
func (c *Config) LoggingOptions() logging.Options {
	level := c.LogLevel
	if level == "" {
		level = "info"
	}
	return logging.Options{DebugMode: c.DebugMode, Level: level}
}

