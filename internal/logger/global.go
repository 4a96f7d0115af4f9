package logger

import (
	"fmt"
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), false)
}

// Configure applies level and format names to the global logger. Unknown
// names leave the current setting alone. The "auto" format picks JSON in
// production and text everywhere else.
func Configure(level, format string, production bool) {
	if l := parseLogLevel(level); l != -1 {
		globalLogger.SetLevel(l)
	}

	if strings.EqualFold(format, "auto") {
		if production {
			globalLogger.SetFormat(JSONFormat)
		} else {
			globalLogger.SetFormat(TextFormat)
		}
		return
	}
	if f := parseLogFormat(format); f != -1 {
		globalLogger.SetFormat(f)
	}
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return -1
	}
}

// parseLogFormat parses a log format string
func parseLogFormat(format string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat
	case "text":
		return TextFormat
	default:
		return -1
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// WithComponent returns a child of the global logger
func WithComponent(component string) *Logger {
	return globalLogger.WithComponent(component)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	globalLogger.log(2, DEBUG, message, first(fields), nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	globalLogger.log(2, INFO, message, first(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	globalLogger.log(2, WARN, message, first(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	globalLogger.log(2, ERROR, message, first(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	globalLogger.log(2, FATAL, message, first(fields), err)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	globalLogger.log(2, INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	globalLogger.log(2, ERROR, fmt.Sprintf(format, args...), nil, nil)
}
