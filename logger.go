// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the diagnostic collaborator a Client is constructed with,
// taken as an explicit dependency rather than a module-level logger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noopLogger discards everything. Used when a Client is constructed
// without an explicit logger.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// charmLogger adapts github.com/charmbracelet/log to the Logger
// interface, giving leveled/colorized output when attached to a
// terminal.
type charmLogger struct {
	l *charmlog.Logger
}

// NewLogger returns a Logger backed by charmbracelet/log writing to
// os.Stderr at the given level name ("debug", "info", "warn", "error").
func NewLogger(level string) Logger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix:          "tn3270",
		ReportTimestamp: true,
	})
	if lvl, err := charmlog.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return charmLogger{l: l}
}

func (c charmLogger) Debugf(format string, args ...any) { c.l.Debugf(format, args...) }
func (c charmLogger) Infof(format string, args ...any)  { c.l.Infof(format, args...) }
func (c charmLogger) Warnf(format string, args ...any)  { c.l.Warnf(format, args...) }
func (c charmLogger) Errorf(format string, args ...any) { c.l.Errorf(format, args...) }
