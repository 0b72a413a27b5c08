package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableColors disables terminal colors
	DisableColors bool
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
	// DisableSorting disables sorting of fields
	DisableSorting bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
}

// Format formats a log entry as text. The request id and method, when
// present, are lifted into the line header.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer

	if !f.DisableTimestamp {
		buf.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		buf.WriteByte(' ')
	}

	levelText := fmt.Sprintf("[%s]", entry.Level.String())
	if !f.DisableColors {
		levelText = f.colorLevel(entry.Level, levelText)
	}
	buf.WriteString(levelText)
	buf.WriteByte(' ')

	if entry.RequestID != "" {
		buf.WriteString(fmt.Sprintf("[%s] ", entry.RequestID))
	}

	if entry.Component != "" {
		buf.WriteString(entry.Component)
		if entry.Method != "" {
			buf.WriteByte(' ')
			buf.WriteString(entry.Method)
		}
		buf.WriteString(": ")
	} else if entry.Method != "" {
		buf.WriteString(entry.Method)
		buf.WriteString(": ")
	}

	buf.WriteString(entry.Message)

	if pairs := f.formatFields(entry.Fields); pairs != "" {
		buf.WriteString(" | ")
		buf.WriteString(pairs)
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// headerFields are rendered in the line header, not as key=value pairs
var headerFields = map[string]bool{
	"request_id": true,
	"method":     true,
	"component":  true,
}

func (f *TextFormatter) formatFields(fields map[string]interface{}) string {
	pairs := make([]string, 0, len(fields))
	for k, v := range fields {
		if headerFields[k] {
			continue
		}

		var valueStr string
		switch val := v.(type) {
		case error:
			valueStr = val.Error()
		case string:
			if strings.Contains(val, " ") {
				valueStr = fmt.Sprintf("%q", val)
			} else {
				valueStr = val
			}
		default:
			valueStr = fmt.Sprintf("%v", v)
		}

		pairs = append(pairs, fmt.Sprintf("%s=%s", k, valueStr))
	}

	if !f.DisableSorting {
		sort.Strings(pairs)
	}

	return strings.Join(pairs, " ")
}

func (f *TextFormatter) colorLevel(level Level, text string) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		blue   = "\033[34m"
		gray   = "\033[90m"
		reset  = "\033[0m"
	)

	switch level {
	case DebugLevel:
		return gray + text + reset
	case InfoLevel:
		return blue + text + reset
	case WarnLevel:
		return yellow + text + reset
	case ErrorLevel, FatalLevel:
		return red + text + reset
	default:
		return text
	}
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	// PrettyPrint enables pretty printing
	PrettyPrint bool
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := entryData(entry)
	data["level"] = entry.Level.String()

	if !f.DisableTimestamp {
		data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	}

	var out []byte
	var err error
	if f.PrettyPrint {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	return append(out, '\n'), nil
}

// NotificationFormatter renders each entry as a newline-delimited
// notifications/message JSON-RPC notification, so a server can forward its
// own logs to the client over the message stream.
type NotificationFormatter struct {
	// Logger is the logger name sent to the client. Entries with a
	// component field use that instead.
	Logger string
	// IncludeTimestamp adds an RFC 3339 timestamp to the data object
	IncludeTimestamp bool
}

// NewNotificationFormatter creates a formatter that names its logger
func NewNotificationFormatter(logger string) *NotificationFormatter {
	return &NotificationFormatter{Logger: logger}
}

// Format formats a log entry as a notifications/message notification
func (f *NotificationFormatter) Format(entry *Entry) ([]byte, error) {
	data := entryData(entry)
	delete(data, "component")
	if f.IncludeTimestamp {
		data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
	}

	logger := f.Logger
	if entry.Component != "" {
		logger = entry.Component
	}

	params, err := protocol.NewLoggingMessageParams(ToProtocolLevel(entry.Level), data, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build log notification: %w", err)
	}
	notification, err := protocol.NewNotification(protocol.MethodLogMessage, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build log notification: %w", err)
	}

	out, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log notification: %w", err)
	}
	return append(out, '\n'), nil
}

// entryData flattens an entry's message and fields into a JSON-ready map,
// turning error values into their message.
func entryData(entry *Entry) map[string]interface{} {
	data := make(map[string]interface{}, len(entry.Fields)+3)
	data["message"] = entry.Message
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			data[k] = err.Error()
		} else {
			data[k] = v
		}
	}
	return data
}
