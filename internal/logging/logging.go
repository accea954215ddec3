// Package logging wires up the CLI's structured logger: colorized
// level-tagged output to stderr via shenwei356/go-logging, backed by
// mattn/go-colorable so color survives on Windows terminals too.
package logging

import (
	"os"

	"github.com/mattn/go-colorable"
	logging "github.com/shenwei356/go-logging"
)

var log = logging.MustGetLogger("seqfeed")

// Init configures the package-level logger's level and color mode.
// level is one of "debug", "info", "warning", "error", "critical".
func Init(level string, noColor bool) error {
	var backend logging.Backend
	if noColor {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	} else {
		backend = logging.NewLogBackend(colorable.NewColorableStderr(), "", 0)
	}
	formatter := logging.MustStringFormatter(
		`%{color}[%{level:.4s}]%{color:reset} %{message}`,
	)
	logging.SetBackend(logging.NewBackendFormatter(backend, formatter))

	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	logging.SetLevel(lvl, "")
	return nil
}

// Logger returns the shared package logger.
func Logger() *logging.Logger { return log }

// Warner adapts the shared logger to source.Warner, so source package
// diagnostics (format warnings, per-file open errors) flow through
// the same structured log as everything else.
type Warner struct{}

func (Warner) Warnf(format string, args ...interface{}) {
	log.Warningf(format, args...)
}
