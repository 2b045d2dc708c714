package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/config"
)

func Test_NewLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		expected zerolog.Level
	}{
		{name: "Default", level: config.DefaultLogLevel, format: config.DefaultLogFormat, expected: zerolog.InfoLevel},
		{name: "Debug level", level: DebugLevel, format: ConsoleFormat, expected: zerolog.DebugLevel},
		{name: "Warn level and json format", level: WarnLevel, format: JSONFormat, expected: zerolog.WarnLevel},
		{name: "Empty level and format (defaults)", level: "", format: "", expected: zerolog.InfoLevel},
		{name: "Error level", level: ErrorLevel, format: ConsoleFormat, expected: zerolog.ErrorLevel},
		{name: "Fatal level", level: FatalLevel, format: ConsoleFormat, expected: zerolog.FatalLevel},
		{name: "Panic level", level: PanicLevel, format: ConsoleFormat, expected: zerolog.PanicLevel},
		{name: "Trace level", level: TraceLevel, format: ConsoleFormat, expected: zerolog.TraceLevel},
		{name: "Unknown format (defaults to console)", level: InfoLevel, format: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			logger := NewLogger(cfg)
			assert.NotNil(t, logger)

			appLogger, ok := logger.(*AppLogger)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, appLogger.log.GetLevel())
		})
	}
}

func Test_NewLoggerWithOutput_JSONFields(t *testing.T) {
	var buf bytes.Buffer

	cfg := config.DefaultConfig()
	cfg.Logging.Format = JSONFormat

	logger := NewLoggerWithOutput(cfg, &buf).WithComponent("STORE")
	logger.Info().Int64("id", 7).Msg("created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "created", entry["message"])
	assert.Equal(t, "STORE", entry["component"])
	assert.Equal(t, config.AppName, entry["app"])
	assert.Equal(t, config.Version, entry["version"])
	assert.InDelta(t, 7, entry["id"], 0)
}

func Test_NewLoggerWithOutput_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	cfg := config.DefaultConfig()
	cfg.Logging.Level = WarnLevel

	logger := NewLoggerWithOutput(cfg, &buf)
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "Debug", level: DebugLevel, expected: zerolog.DebugLevel},
		{name: "Info", level: InfoLevel, expected: zerolog.InfoLevel},
		{name: "Warn", level: WarnLevel, expected: zerolog.WarnLevel},
		{name: "Error", level: ErrorLevel, expected: zerolog.ErrorLevel},
		{name: "Fatal", level: FatalLevel, expected: zerolog.FatalLevel},
		{name: "Panic", level: PanicLevel, expected: zerolog.PanicLevel},
		{name: "Trace", level: TraceLevel, expected: zerolog.TraceLevel},
		{name: "Unknown", level: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.level))
		})
	}
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}

func Test_zerologEvent(t *testing.T) {
	var buf bytes.Buffer

	cfg := config.DefaultConfig()
	cfg.Logging.Level = DebugLevel
	logger := NewLoggerWithOutput(cfg, &buf)

	t.Run("Event chaining", func(t *testing.T) {
		event := logger.Debug()

		result := event.Str("key", "value")
		assert.NotNil(t, result)

		result = event.Dur("duration", time.Second)
		assert.NotNil(t, result)

		result = event.Err(errors.New("test error"))
		assert.NotNil(t, result)

		event.Msg("test message")
	})

	t.Run("All log levels", func(t *testing.T) {
		logger.Debug().Msg("debug test")
		logger.Info().Msg("info test")
		logger.Warn().Msg("warn test")
		logger.Error().Msg("error test")

		assert.Contains(t, buf.String(), "error test")
	})
}
