package internal

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ParseLogLevel maps a LOG_LEVEL value onto a LogLevel, defaulting to info
func ParseLogLevel(value string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "DEBUG", "TRACE":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) charm() log.Level {
	switch l {
	case LogLevelError:
		return log.ErrorLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelDebug:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Logger provides leveled logging
type Logger struct {
	level LogLevel
	base  *log.Logger
}

// NewLogger creates a logger writing to w at the specified level
func NewLogger(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		level: level,
		base: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level.charm(),
		}),
	}
}

// NewDefaultLogger creates a stderr logger based on the LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stderr, ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// With returns a logger that prefixes every message with the component name
func (l *Logger) With(component string) *Logger {
	return &Logger{level: l.level, base: l.base.WithPrefix(component)}
}

// SetLevel changes the verbosity of l and every logger derived from it afterwards
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
	l.base.SetLevel(level.charm())
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.base.Errorf(format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.base.Warnf(format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.base.Infof(format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.base.Debugf(format, args...)
}

// Infow logs a message with structured key/value pairs
func (l *Logger) Infow(msg string, keyvals ...interface{}) {
	l.base.Info(msg, keyvals...)
}
