package logging

import "sync/atomic"

var globalLogger atomic.Value

func init() {
	globalLogger.Store(loggerHolder{New(nil, nil)})
}

// loggerHolder keeps the stored dynamic type constant for atomic.Value
type loggerHolder struct {
	Logger
}

// SetGlobalLogger replaces the package-level logger
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		return
	}
	globalLogger.Store(loggerHolder{logger})
}

// GetGlobalLogger returns the package-level logger
func GetGlobalLogger() Logger {
	return globalLogger.Load().(loggerHolder).Logger
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

// LogError logs an error message using the global logger
func LogError(msg string, fields ...Field) {
	GetGlobalLogger().Error(msg, fields...)
}
