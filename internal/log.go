package internal

import (
	"log"
	"os"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging over the standard library logger, with an
// optional component prefix.
type Logger struct {
	level  LogLevel
	prefix string
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger creates a logger based on the GEOSPEC_LOG_LEVEL
// environment variable, defaulting to Info.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	switch os.Getenv("GEOSPEC_LOG_LEVEL") {
	case "error":
		level = LogLevelError
	case "warn":
		level = LogLevelWarn
	case "info":
		level = LogLevelInfo
	case "debug":
		level = LogLevelDebug
	}
	return &Logger{level: level}
}

// WithPrefix returns a logger that tags every line with a component name.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{level: l.level, prefix: "[" + prefix + "] "}
}

func (l *Logger) printf(tag, format string, args ...interface{}) {
	log.Printf(tag+" "+l.prefix+format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.printf("[ERROR]", format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.printf("[WARN]", format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.printf("[INFO]", format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.printf("[DEBUG]", format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
