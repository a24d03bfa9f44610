package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CALPERM_LOG_LEVEL"

// Options controls where diagnostic output goes.
type Options struct {
	// Level is one of debug, info, warn, error. Empty falls back to
	// CALPERM_LOG_LEVEL, and to silence if that is unset too.
	Level string

	// OutputPath receives log entries. Empty means stderr, which keeps
	// diagnostics out of the interactive screens on stdout.
	OutputPath string
}

// Initialize creates the global logger from opts.
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if opts.OutputPath != "" {
		output = opts.OutputPath
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if opts.OutputPath == "" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until Initialize runs, so packages can log from tests
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger, e.g. with a zaptest/observer core.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRemoteCall records one admin API call and its outcome.
func LogRemoteCall(cmdlet, identity string, elapsed time.Duration, err error) {
	fields := []zap.Field{
		zap.String("cmdlet", cmdlet),
		zap.String("identity", identity),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		Warn("Remote call failed", append(fields, zap.Error(err))...)
		return
	}
	Debug("Remote call completed", fields...)
}

// LogStep records a workflow transition.
func LogStep(action, step string, fields ...zap.Field) {
	Debug("Workflow step", append([]zap.Field{
		zap.String("action", action),
		zap.String("step", step),
	}, fields...)...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
