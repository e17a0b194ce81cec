package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

var global atomic.Pointer[Logger]

func init() {
	l := NewDefault()
	if level, err := ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(level)
	}
	if format, err := ParseFormat(os.Getenv("LOG_FORMAT"), ""); err == nil {
		l.SetFormat(format)
	}
	global.Store(l)
}

// ParseLevel parses a level name; an empty string means INFO
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("invalid log level %q (allowed: debug, info, warn, error, fatal)", level)
	}
}

// ParseFormat parses a format name. "auto" (or empty) picks text output for
// local and development environments and JSON everywhere else.
func ParseFormat(format, environment string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	case "", "auto":
		switch strings.ToLower(environment) {
		case "local", "development":
			return TextFormat, nil
		}
		return JSONFormat, nil
	default:
		return JSONFormat, fmt.Errorf("invalid log format %q (allowed: json, text, auto)", format)
	}
}

// Configure applies level and format settings to the global logger
func Configure(level, format, environment string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	fmtType, err := ParseFormat(format, environment)
	if err != nil {
		return err
	}
	l := GetGlobalLogger()
	l.SetLevel(lvl)
	l.SetFormat(fmtType)
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return global.Load()
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	global.Store(logger)
}

// Component returns a global logger scoped to the component
func Component(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...Fields) {
	GetGlobalLogger().log(2, DEBUG, message, first(fields), nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	GetGlobalLogger().log(2, INFO, message, first(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	GetGlobalLogger().log(2, WARN, message, first(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(2, ERROR, message, first(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(2, FATAL, message, first(fields), err)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	GetGlobalLogger().log(2, INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	GetGlobalLogger().log(2, WARN, fmt.Sprintf(format, args...), nil, nil)
}
