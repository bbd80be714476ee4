// Package obslog is the simulation core's leveled logging facade: a small
// set of free functions (Verbosef/Eventf/Pathf/Errorf) gated by a package
// global verbosity knob, backed by zerolog. Mirrors the teacher's own
// simLogVerbose/simLogEvent/simLogPath free-function logging idiom, just
// with a structured sink instead of DebugPrintf.
package obslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Level orders the logging verbosity a job or the process overall runs at.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelEvent
	LevelVerbose
	LevelPath
)

// Verbosity is the global logging level. Callers check it (via Enabled)
// before paying for a path-level log line in the hot simulation loop.
var Verbosity = LevelEvent

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Init replaces the package logger, e.g. to switch to JSON output for
// production or to redirect to a file.
func Init(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Errorf logs at error level unconditionally.
func Errorf(format string, args ...any) {
	current().Error().Msgf(format, args...)
}

// Eventf logs job lifecycle events (submitted, batch complete, finished) at
// LevelEvent and above.
func Eventf(format string, args ...any) {
	if Verbosity < LevelEvent {
		return
	}
	current().Info().Msgf(format, args...)
}

// Verbosef logs per-batch diagnostic detail at LevelVerbose and above.
func Verbosef(format string, args ...any) {
	if Verbosity < LevelVerbose {
		return
	}
	current().Debug().Msgf(format, args...)
}

// Pathf logs per-iteration detail at LevelPath only — expensive enough that
// callers should guard the draw site with an Enabled(LevelPath) check
// rather than relying on Msgf's argument evaluation being free.
func Pathf(format string, args ...any) {
	if Verbosity < LevelPath {
		return
	}
	current().Trace().Msgf(format, args...)
}

// Enabled reports whether a log call at level would currently be emitted,
// so a caller can skip building an expensive format argument.
func Enabled(level Level) bool {
	return Verbosity >= level
}
