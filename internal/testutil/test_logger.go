package testutil

import (
	"io"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a logger that writes nowhere.
func NewTestLogger() *zerolog.Logger {
	return NewLoggerTo(zerolog.ConsoleWriter{Out: io.Discard})
}

// NewLoggerTo logs at debug level to w, for tests that assert on log lines.
func NewLoggerTo(w io.Writer) *zerolog.Logger {
	l := zerolog.New(w).Level(zerolog.DebugLevel)
	return &l
}
