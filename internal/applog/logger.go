// Package applog provides the process-wide logging abstraction every other
// package depends on as an explicit collaborator, never a singleton: a
// small interface implemented by a ConsoleLogger default, shared by every
// package instead of one duplicate interface per package, since every
// component here logs the same way.
package applog

import (
	"fmt"
	"os"
	"time"
)

// Logger is the shared logging collaborator. Debugf is gated by the
// caller's verbosity setting; the other levels are always emitted.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ConsoleLogger is the default Logger, printing timestamped, leveled lines
// to stdout/stderr. Verbose gates Debugf output, matching the CLI's
// --debug/-v flag.
type ConsoleLogger struct {
	Verbose bool
}

func (c *ConsoleLogger) Debugf(format string, args ...any) {
	if !c.Verbose {
		return
	}
	c.printf(os.Stdout, "debug", format, args...)
}

func (c *ConsoleLogger) Infof(format string, args ...any) {
	c.printf(os.Stdout, "info", format, args...)
}

func (c *ConsoleLogger) Warnf(format string, args ...any) {
	c.printf(os.Stdout, "warn", format, args...)
}

func (c *ConsoleLogger) Errorf(format string, args ...any) {
	c.printf(os.Stderr, "error", format, args...)
}

func (c *ConsoleLogger) printf(w *os.File, level, format string, args ...any) {
	fmt.Fprintf(w, "%s [%s] %s\n", time.Now().Format("2006-01-02T15:04:05.000"), level, fmt.Sprintf(format, args...))
}
