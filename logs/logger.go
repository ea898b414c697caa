package logs

import "log/slog"

// Logger is the structured logging entry point shared by library packages.
// Backed by slog unless a different implementation is injected.
type Logger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogWrapper struct{}

func (s slogWrapper) Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func (s slogWrapper) Info(msg string, args ...any)  { slog.Info(msg, args...) }
func (s slogWrapper) Error(msg string, args ...any) { slog.Error(msg, args...) }

// DefaultLogger can be swapped per module, mainly for tests.
var DefaultLogger Logger = slogWrapper{}

// Nop discards all log output.
type Nop struct{}

func (Nop) Warn(string, ...any)  {}
func (Nop) Info(string, ...any)  {}
func (Nop) Error(string, ...any) {}

// OrDefault returns l, or DefaultLogger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return DefaultLogger
	}
	return l
}
