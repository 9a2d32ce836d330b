package logger

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/devcat-io/devcat/internal/constants"
)

// New creates a logger. Without options it writes readable lines at info
// level to stdout.
func New(opts ...Option) *zerolog.Logger {
	config := &Config{
		output:  os.Stdout,
		level:   zerolog.InfoLevel,
		console: true,
	}

	for _, opt := range opts {
		opt.apply(config)
	}

	var logger zerolog.Logger
	if config.console {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:          config.output,
			NoColor:      config.noColor,
			PartsExclude: []string{zerolog.TimestampFieldName},
		})
	} else {
		logger = zerolog.New(config.output)
	}

	logger = logger.Level(config.level)
	return &logger
}

// NewConsoleLogger is the CLI logger: stderr, so stdout stays clean for
// command output, and no colors when stderr is not a terminal or NO_COLOR is set.
func NewConsoleLogger() *zerolog.Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	return New(
		WithLevel(constants.DefaultLogLevel),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
		WithNoColor(noColor || !term.IsTerminal(int(os.Stderr.Fd()))),
	)
}

// ForRun returns a child logger tagged with a fresh invocation id, and the id itself.
// The id keeps log lines of concurrent invocations apart.
func ForRun(parent *zerolog.Logger) (*zerolog.Logger, string) {
	runID := uuid.NewString()
	child := parent.With().Str("run", runID).Logger()
	return &child, runID
}
