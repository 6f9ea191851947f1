package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures logging to stderr
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupFileLogger logs to the named file, for commands that own the
// terminal with a TUI. When debug is off the logger discards output.
func SetupFileLogger(path string, debug bool) (*log.Logger, func(), error) {
	if !debug {
		logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }, nil
}
