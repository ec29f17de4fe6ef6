// Package logging builds formatic's one process-wide zerolog.Logger, the
// structured logger reached for elsewhere in this corpus instead of bare
// fmt/log calls.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LevelForVerbosity maps a repeatable -v flag count onto a zerolog level:
// 0 → Warn, 1 → Info, 2+ → Debug.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New builds a console-writer logger at the level derived from verbosity,
// writing to w (os.Stderr in production, a bytes.Buffer in tests).
func New(w io.Writer, verbosity int) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).
		Level(LevelForVerbosity(verbosity)).
		With().
		Timestamp().
		Logger()
}

// Default builds a logger writing to os.Stderr, the one cmd/formatic's main
// actually constructs.
func Default(verbosity int) zerolog.Logger {
	return New(os.Stderr, verbosity)
}

// Component returns a child logger tagged with the given component name
// (engine, harness, walker).
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
