// Package logging provides structured logging for code that encodes and
// decodes MCP messages. Entries can be rendered as text, as JSON, or as
// notifications/message notifications ready to send to a client.
package logging

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	mcperrors "github.com/ajitpratap0/mcp-protocol-go/pkg/errors"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// Level represents the severity of a log message
type Level int

const (
	// DebugLevel is for detailed information useful for debugging
	DebugLevel Level = iota - 1
	// InfoLevel is for general informational messages
	InfoLevel
	// WarnLevel is for warning messages
	WarnLevel
	// ErrorLevel is for error messages
	ErrorLevel
	// FatalLevel is for fatal errors that will terminate the program
	FatalLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ToProtocolLevel maps a logger level onto the RFC 5424 levels used by
// notifications/message
func ToProtocolLevel(l Level) protocol.LoggingLevel {
	switch {
	case l <= DebugLevel:
		return protocol.LoggingLevelDebug
	case l == InfoLevel:
		return protocol.LoggingLevelInfo
	case l == WarnLevel:
		return protocol.LoggingLevelWarning
	case l == ErrorLevel:
		return protocol.LoggingLevelError
	default:
		return protocol.LoggingLevelCritical
	}
}

// FromProtocolLevel maps a logging/setLevel level onto the nearest logger
// level. Notice folds into info; critical and above fold into fatal.
func FromProtocolLevel(l protocol.LoggingLevel) (Level, error) {
	switch l {
	case protocol.LoggingLevelDebug:
		return DebugLevel, nil
	case protocol.LoggingLevelInfo, protocol.LoggingLevelNotice:
		return InfoLevel, nil
	case protocol.LoggingLevelWarning:
		return WarnLevel, nil
	case protocol.LoggingLevelError:
		return ErrorLevel, nil
	case protocol.LoggingLevelCritical, protocol.LoggingLevelAlert, protocol.LoggingLevelEmergency:
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown logging level %q", l)
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// ErrorField creates an error field
func ErrorField(err error) Field {
	return Field{Key: "error", Value: err}
}

// Duration creates a duration field
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Time creates a time field
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Method creates the field for a JSON-RPC method name
func Method(method string) Field {
	return Field{Key: "method", Value: method}
}

// ID creates the request_id field from a JSON-RPC request id
func ID(id protocol.RequestID) Field {
	return Field{Key: "request_id", Value: id.String()}
}

// Kind creates the field for a message kind
func Kind(kind protocol.MessageKind) Field {
	return Field{Key: "kind", Value: kind.String()}
}

// Logger is the interface for structured logging
type Logger interface {
	// Debug logs a debug message with fields
	Debug(msg string, fields ...Field)
	// Info logs an info message with fields
	Info(msg string, fields ...Field)
	// Warn logs a warning message with fields
	Warn(msg string, fields ...Field)
	// Error logs an error message with fields
	Error(msg string, fields ...Field)
	// Fatal logs a fatal message with fields and exits
	Fatal(msg string, fields ...Field)

	// WithFields returns a new logger with additional fields
	WithFields(fields ...Field) Logger
	// WithContext returns a new logger with context fields
	WithContext(ctx context.Context) Logger
	// WithError returns a new logger with error context
	WithError(err error) Logger

	// SetLevel sets the minimum log level
	SetLevel(level Level)
	// GetLevel returns the current log level
	GetLevel() Level
}

// Entry represents a log entry
type Entry struct {
	Level     Level
	Message   string
	Fields    map[string]interface{}
	Timestamp time.Time
	RequestID string
	Method    string
	Component string
}

// Formatter formats log entries
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

type baseLogger struct {
	mu        *sync.RWMutex
	level     *Level
	output    io.Writer
	formatter Formatter
	fields    map[string]interface{}
}

// New creates a new structured logger. Output defaults to stderr because
// stdout is the message stream for stdio servers.
func New(output io.Writer, formatter Formatter) Logger {
	if output == nil {
		output = os.Stderr
	}
	if formatter == nil {
		formatter = NewTextFormatter()
	}

	level := InfoLevel
	return &baseLogger{
		mu:        &sync.RWMutex{},
		level:     &level,
		output:    output,
		formatter: formatter,
		fields:    make(map[string]interface{}),
	}
}

// Debug logs a debug message
func (l *baseLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info message
func (l *baseLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning message
func (l *baseLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error message
func (l *baseLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// Fatal logs a fatal message and exits
func (l *baseLogger) Fatal(msg string, fields ...Field) {
	l.log(FatalLevel, msg, fields...)
	os.Exit(1)
}

// WithFields returns a new logger with additional fields. The child shares
// the parent's level and output lock, so logging/setLevel on the root
// applies everywhere.
func (l *baseLogger) WithFields(fields ...Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for _, field := range fields {
		newFields[field.Key] = field.Value
	}

	return &baseLogger{
		mu:        l.mu,
		level:     l.level,
		output:    l.output,
		formatter: l.formatter,
		fields:    newFields,
	}
}

// WithContext returns a new logger with the request id and method carried
// by ctx
func (l *baseLogger) WithContext(ctx context.Context) Logger {
	var fields []Field

	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, ID(id))
	}
	if method := MethodFromContext(ctx); method != "" {
		fields = append(fields, Method(method))
	}

	return l.WithFields(fields...)
}

// WithError returns a new logger with error context. Structured errors
// contribute their code and category; decode failures name the type and
// wire key that failed.
func (l *baseLogger) WithError(err error) Logger {
	fields := []Field{ErrorField(err)}

	if mcpErr, ok := mcperrors.AsMCPError(err); ok {
		fields = append(fields,
			String("error_code", fmt.Sprintf("%d", int(mcpErr.Code()))),
			String("error_category", string(mcpErr.Category())),
			String("error_severity", string(mcpErr.Severity())),
		)

		if ctx := mcpErr.Context(); ctx != nil {
			if ctx.RequestID != "" {
				fields = append(fields, String("request_id", ctx.RequestID))
			}
			if ctx.Method != "" {
				fields = append(fields, Method(ctx.Method))
			}
			if ctx.Component != "" {
				fields = append(fields, String("component", ctx.Component))
			}
		}
	}

	var decodeErr *protocol.DecodeError
	if stderrors.As(err, &decodeErr) {
		fields = append(fields, String("decode_type", decodeErr.Type))
		if decodeErr.Field != "" {
			fields = append(fields, String("decode_field", decodeErr.Field))
		}
	}

	return l.WithFields(fields...)
}

// SetLevel sets the minimum log level
func (l *baseLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.level = level
}

// GetLevel returns the current log level
func (l *baseLogger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return *l.level
}

func (l *baseLogger) log(level Level, msg string, fields ...Field) {
	l.mu.RLock()
	if level < *l.level {
		l.mu.RUnlock()
		return
	}

	entry := &Entry{
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]interface{}, len(l.fields)+len(fields)),
		Timestamp: time.Now(),
	}
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	l.mu.RUnlock()

	for _, field := range fields {
		entry.Fields[field.Key] = field.Value
	}

	if requestID, ok := entry.Fields["request_id"].(string); ok {
		entry.RequestID = requestID
	}
	if method, ok := entry.Fields["method"].(string); ok {
		entry.Method = method
	}
	if component, ok := entry.Fields["component"].(string); ok {
		entry.Component = component
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to format log entry: %v\n", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.output.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log entry: %v\n", err)
	}
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	methodKey    contextKey = "method"
)

// ContextWithRequestID returns a context carrying a JSON-RPC request id
func ContextWithRequestID(ctx context.Context, id protocol.RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request id from a context
func RequestIDFromContext(ctx context.Context) (protocol.RequestID, bool) {
	id, ok := ctx.Value(requestIDKey).(protocol.RequestID)
	return id, ok
}

// ContextWithMethod returns a context carrying a JSON-RPC method name
func ContextWithMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, methodKey, method)
}

// MethodFromContext extracts the method name from a context
func MethodFromContext(ctx context.Context) string {
	method, _ := ctx.Value(methodKey).(string)
	return method
}
