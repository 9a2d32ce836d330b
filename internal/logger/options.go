package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	output  io.Writer
	level   zerolog.Level
	console bool
	noColor bool
}

// Option configures the logger
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(cfg *Config) {
	f(cfg)
}

// WithLevel sets the level by name ("debug", "info", "warn", "error",
// "disabled"). Unknown names fall back to info.
func WithLevel(level string) Option {
	return optionFunc(func(cfg *Config) {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil || parsed == zerolog.NoLevel {
			parsed = zerolog.InfoLevel
		}
		cfg.level = parsed
	})
}

// WithConsoleWriter switches between human readable lines and JSON.
func WithConsoleWriter(enabled bool) Option {
	return optionFunc(func(cfg *Config) {
		cfg.console = enabled
	})
}

// WithNoColor drops ANSI colors from console output.
func WithNoColor(noColor bool) Option {
	return optionFunc(func(cfg *Config) {
		cfg.noColor = noColor
	})
}

func WithOutput(output io.Writer) Option {
	return optionFunc(func(cfg *Config) {
		cfg.output = output
	})
}
