// Package debug provides TUI-safe logging. Stdout belongs to the
// terminal UI while it runs, so everything goes to a file, and only
// when logging was switched on. Subsystems take a component-tagged
// logger once at construction; UI code drops quick breadcrumbs
// through Log.
package debug

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	file    *os.File
	root    = zerolog.Nop()
	enabled bool
)

// Enable starts debug logging to the given path, truncating any
// previous log. Calling it twice is a no-op.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	root = zerolog.New(zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}).With().Timestamp().Logger()
	enabled = true

	root.Info().Msg("debug logging started")
	return nil
}

// Disable stops debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	root = zerolog.Nop()
	enabled = false
}

// Logger returns a component-tagged logger for a subsystem. While
// logging is disabled it is a no-op logger, so callers never check.
func Logger(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root.With().Str("component", component).Logger()
}

// Log writes one formatted breadcrumb under a category, for UI-side
// spots where wiring a full logger isn't worth it.
func Log(category, format string, args ...any) {
	mu.Lock()
	l := root
	mu.Unlock()
	l.Debug().Str("category", category).Msgf(format, args...)
}
