// Package forgelog is a thin, package-level wrapper around
// charmbracelet/log giving every other package a single shared,
// styled logger instead of each constructing its own.
package forgelog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	output io.Writer = os.Stderr
	std               = log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
	})
)

// SetOutput redirects the shared logger's writer, for tests and for a
// CLI entrypoint that wants to send logs to a file instead of stderr.
func SetOutput(w io.Writer) {
	output = w
	std.SetOutput(w)
}

// SetLevel adjusts the shared logger's minimum level.
func SetLevel(level log.Level) {
	std.SetLevel(level)
}

// Writer exposes the stream the shared logger is currently writing to, so
// callers that need raw access (progress line rewriting) can share it
// instead of constructing a second writer.
func Writer() io.Writer {
	return output
}

func Debugf(format string, args ...any) {
	std.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	std.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	std.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	std.Fatalf(format, args...)
}

// With returns a child logger carrying the given structured key-value
// pairs on every subsequent call, for scoping log lines to a build run or
// a single project without repeating its identifier in every message.
func With(keyvals ...any) *log.Logger {
	return std.With(keyvals...)
}
