// Package logging sets up the application's slog-based loggers: a
// structured JSON logger on stdout, a human-readable text logger on
// stderr, and optional rotating file loggers for individual services.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger

var currentLevel = slog.LevelInfo
var fileWriter *lumberjack.Logger

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the logging system and installs the structured logger
// as the process default.
func Init() {
	SetLevel(slog.LevelInfo)
}

// SetLevel rebuilds both loggers with the given minimum level.
func SetLevel(level slog.Level) {
	currentLevel = level
	rebuild()
}

func rebuild() {
	structuredOut := io.Writer(os.Stdout)
	if fileWriter != nil {
		structuredOut = io.MultiWriter(os.Stdout, fileWriter)
	}
	structuredLogger = slog.New(slog.NewJSONHandler(structuredOut, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))
	humanReadableLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))
	slog.SetDefault(structuredLogger)
}

// Structured returns the global structured (JSON) logger, or nil before Init.
func Structured() *slog.Logger {
	return structuredLogger
}

// HumanReadable returns the global human-readable (text) logger, or nil
// before Init.
func HumanReadable() *slog.Logger {
	return humanReadableLogger
}

// ForService returns a logger with the 'service' attribute added, based on
// the global structured logger. Returns nil if Init has not been called.
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return nil
	}
	return structuredLogger.With("service", serviceName)
}

// Convenience functions using the default logger.

func Debug(msg string, args ...any) { slog.Debug(msg, args...) }
func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }

// Fatal logs at the custom FATAL level and exits.
func Fatal(msg string, args ...any) {
	slog.Log(context.TODO(), LevelFatal, msg, args...)
	os.Exit(1)
}

// Trace logs at the custom TRACE level.
func Trace(msg string, args ...any) {
	slog.Log(context.TODO(), LevelTrace, msg, args...)
}

// EnableFileLogging mirrors the structured JSON log to filePath with
// size-based rotation via lumberjack. All service loggers created after
// this call write to the file as well as stdout. It returns a function
// that detaches and closes the log file.
func EnableFileLogging(filePath string) (func() error, error) {
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	rebuild()

	writer := fileWriter
	return func() error {
		fileWriter = nil
		rebuild()
		return writer.Close()
	}, nil
}
