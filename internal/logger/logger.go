package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings selectable with log.format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects level and encoding of the process logger.
type Options struct {
	Level  string
	Format string
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the singleton console logger at level.
func Get(level string) *Logger {
	return Init(Options{Level: level, Format: FormatConsole})
}

// Init returns the singleton logger, building it from opts on the first call.
// Later calls ignore opts and return the already initialized instance.
func Init(opts Options) *Logger {
	once.Do(func() {
		globalLogger = New(opts)
	})
	return globalLogger
}
