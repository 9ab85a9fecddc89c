// Package logger builds prefixed charmbracelet/log loggers sharing the global level.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a stderr logger tagged with prefix. Stdout is reserved for
// the IPC stream.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter returns a logger tagged with prefix writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup configures the package level logger used across snipserve.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	log.SetReportCaller(debug)
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.InfoLevel)
}
