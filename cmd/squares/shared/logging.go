package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log with timestamped console output
// on stderr. Debug overrides the configured level.
func SetupLogger(level log.Level, debug bool) *log.Logger {
	return NewLogger(os.Stderr, level, debug)
}

// NewLogger is SetupLogger with an explicit writer.
func NewLogger(w io.Writer, level log.Level, debug bool) *log.Logger {
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "SQUARES",
	})
}
