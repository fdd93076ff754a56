// SPDX-License-Identifier: Apache-2.0

// Package logger provides a thin wrapper around zerolog.Logger used by the
// openclaw bootstrap binaries.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Every boot gets a fresh boot_id field so the lines of a single container
// start can be correlated even when the orchestrator restarts the container
// in a tight loop.
package logger

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label (e.g. "boot",
// "healthcheck").
//
// The logger is configured with:
//   - a "role" field set to role, useful for filtering logs from the
//     different binaries shipped in the image;
//   - a "boot_id" field holding a random UUID identifying this process run;
//   - a "ts" timestamp field added to every log entry.
//
// Output is written to os.Stdout in JSON format. The level defaults to
// Info; call WithVerbose to lower it to Debug.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Str("boot_id", uuid.NewString()).
		Timestamp().
		Logger()

	return &Logger{l}
}

// WithVerbose returns a copy of the logger with the Debug level enabled
// when verbose is true, and the receiver unchanged otherwise.
func (l *Logger) WithVerbose(verbose bool) *Logger {
	if !verbose {
		return l
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return &Logger{l.Level(zerolog.DebugLevel)}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}
