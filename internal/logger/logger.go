package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	JSONFormat LogFormat = iota
	TextFormat
)

// Fields carries structured key/value context for a log line
type Fields map[string]interface{}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	Caller    string `json:"caller,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// exit is swapped in tests so FATAL can be exercised
var exit = osExit

var osExit = os.Exit

// Logger writes leveled, structured log lines. Loggers derived with
// WithComponent or With share the parent's output and settings.
type Logger struct {
	core      *core
	component string
	fields    Fields
}

// core holds the mutable settings shared by a logger family
type core struct {
	mu     sync.RWMutex
	level  LogLevel
	format LogFormat
	output io.Writer
}

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Logger{
		core: &core{
			level:  config.Level,
			format: config.Format,
			output: config.Output,
		},
		component: config.Component,
	}
}

// NewDefault creates a JSON logger at INFO level on stdout
func NewDefault() *Logger {
	return New(Config{Level: INFO, Format: JSONFormat, Output: os.Stdout})
}

// WithComponent returns a logger tagging every line with the component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{core: l.core, component: component, fields: l.fields}
}

// With returns a logger that adds the given fields to every line
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{core: l.core, component: l.component, fields: merged}
}

// SetLevel sets the minimum log level for the logger family
func (l *Logger) SetLevel(level LogLevel) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = level
}

// SetFormat sets the output format for the logger family
func (l *Logger) SetFormat(format LogFormat) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.format = format
}

// Enabled reports whether lines at the level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	l.core.mu.RLock()
	defer l.core.mu.RUnlock()
	return level >= l.core.level
}

func (l *Logger) log(skip int, level LogLevel, message string, fields Fields, err error) {
	l.core.mu.RLock()
	defer l.core.mu.RUnlock()

	if level < l.core.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		Fields:    l.mergeFields(fields),
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			file = file[idx+1:]
		}
		entry.Caller = fmt.Sprintf("%s:%d", file, line)
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var out []byte
	if l.core.format == JSONFormat {
		b, mErr := json.Marshal(entry)
		if mErr != nil {
			b = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"error":"unencodable fields"}`, entry.Level, entry.Message))
		}
		out = append(b, '\n')
	} else {
		out = []byte(formatText(entry))
	}
	l.core.output.Write(out)

	if level == FATAL {
		exit(1)
	}
}

func (l *Logger) mergeFields(fields Fields) Fields {
	if len(l.fields) == 0 {
		return fields
	}
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// formatText renders an entry as a single human-readable line with sorted fields
func formatText(entry LogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s", entry.Timestamp, entry.Level)
	if entry.Component != "" {
		fmt.Fprintf(&b, " [%s]", entry.Component)
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%q", entry.Error)
	}
	if entry.Caller != "" {
		fmt.Fprintf(&b, " (%s)", entry.Caller)
	}
	b.WriteString("\n")
	return b.String()
}

func first(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(2, DEBUG, message, first(fields), nil)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(2, INFO, message, first(fields), nil)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(2, WARN, message, first(fields), nil)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...Fields) {
	l.log(2, ERROR, message, first(fields), err)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(message string, err error, fields ...Fields) {
	l.log(2, FATAL, message, first(fields), err)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(2, DEBUG, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(2, INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(2, WARN, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(2, ERROR, fmt.Sprintf(format, args...), nil, nil)
}
