package logger

// Logger is the structured logging interface used throughout the module.
// All log methods accept a message string followed by key-value pairs.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs
	Debug(msg string, args ...any)

	// Info logs an info-level message with optional key-value pairs
	Info(msg string, args ...any)

	// Warn logs a warning-level message with optional key-value pairs
	Warn(msg string, args ...any)

	// Error logs an error-level message with optional key-value pairs
	Error(msg string, args ...any)

	// With creates a child logger with additional key-value pairs that
	// will be included in all subsequent log entries
	With(args ...any) Logger
}

// nop discards everything. It is the default logger of library types so
// embedders opt in to logging instead of opting out.
type nop struct{}

// NewNop returns a Logger that discards all entries.
func NewNop() Logger { return nop{} }

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (n nop) With(...any) Logger { return n }
