package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"":        LogLevelInfo,
		"info":    LogLevelInfo,
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		"WARNING": LogLevelWarn,
		" debug ": LogLevelDebug,
		"TRACE":   LogLevelDebug,
		"bogus":   LogLevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseLogLevel(input), input)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogLevelInfo)

	logger.Debug("hidden %d", 1)
	assert.Zero(t, buf.Len())

	logger.Info("loaded %d rows", 3)
	assert.Contains(t, buf.String(), "loaded 3 rows")
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogLevelError)

	logger.Warn("quiet")
	assert.Zero(t, buf.Len())

	logger.SetLevel(LogLevelWarn)
	logger.Warn("skipped %d rows", 2)
	logger.Info("hidden")
	assert.Contains(t, buf.String(), "skipped 2 rows")
	assert.NotContains(t, buf.String(), "hidden")

	logger.SetLevel(LogLevelDebug)
	logger.Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestLoggerWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogLevelInfo).With("cache")

	logger.Infow("written", "bytes", 42)

	out := buf.String()
	assert.Contains(t, out, "cache")
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "bytes=42")
}
