package protocol

import (
	"encoding/json"
	"fmt"
)

// LoggingLevel is the severity of a log message, as defined by RFC 5424
type LoggingLevel string

// Logging levels in ascending severity
const (
	LoggingLevelDebug     LoggingLevel = "debug"
	LoggingLevelInfo      LoggingLevel = "info"
	LoggingLevelNotice    LoggingLevel = "notice"
	LoggingLevelWarning   LoggingLevel = "warning"
	LoggingLevelError     LoggingLevel = "error"
	LoggingLevelCritical  LoggingLevel = "critical"
	LoggingLevelAlert     LoggingLevel = "alert"
	LoggingLevelEmergency LoggingLevel = "emergency"
)

var loggingLevels = []LoggingLevel{
	LoggingLevelDebug,
	LoggingLevelInfo,
	LoggingLevelNotice,
	LoggingLevelWarning,
	LoggingLevelError,
	LoggingLevelCritical,
	LoggingLevelAlert,
	LoggingLevelEmergency,
}

// LoggingLevels returns every level in ascending severity
func LoggingLevels() []LoggingLevel {
	out := make([]LoggingLevel, len(loggingLevels))
	copy(out, loggingLevels)
	return out
}

// Severity returns the rank of the level, 0 for debug up to 7 for
// emergency, or -1 for an unknown level.
func (l LoggingLevel) Severity() int {
	for i, lvl := range loggingLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is a known level
func (l LoggingLevel) Valid() bool {
	return l.Severity() >= 0
}

// UnmarshalJSON implements json.Unmarshaler and rejects unknown levels
func (l *LoggingLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return decodeErr("LoggingLevel", "", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if !LoggingLevel(s).Valid() {
		return decodeErr("LoggingLevel", "", fmt.Errorf("%w: %q", ErrInvalidEnum, s))
	}
	*l = LoggingLevel(s)
	return nil
}

// LoggingMessageParams defines parameters for the notifications/message notification
type LoggingMessageParams struct {
	Level  LoggingLevel    `json:"level"`
	Data   json.RawMessage `json:"data"`
	Logger string          `json:"logger,omitempty"`
}

// NewLoggingMessageParams creates a log message. A nil data value is sent as null.
func NewLoggingMessageParams(level LoggingLevel, data interface{}, logger string) (*LoggingMessageParams, error) {
	raw, err := marshalPayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log data: %w", err)
	}
	if raw == nil {
		raw = json.RawMessage("null")
	}
	return &LoggingMessageParams{Level: level, Data: raw, Logger: logger}, nil
}

// MarshalJSON implements json.Marshaler
func (p LoggingMessageParams) MarshalJSON() ([]byte, error) {
	type params LoggingMessageParams
	w := params(p)
	if len(w.Data) == 0 {
		w.Data = json.RawMessage("null")
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. The data key must be present
// but may hold any JSON value, including null.
func (p *LoggingMessageParams) UnmarshalJSON(data []byte) error {
	const typ = "LoggingMessageParams"
	obj, err := rawObject(data, typ)
	if err != nil {
		return err
	}
	if err := requireFields(obj, typ, "level"); err != nil {
		return err
	}
	if _, ok := obj["data"]; !ok {
		return decodeErr(typ, "data", ErrMissingField)
	}

	type params LoggingMessageParams
	var w params
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapMalformed(err, typ)
	}
	*p = LoggingMessageParams(w)
	return nil
}

// SetLevelParams defines parameters for the logging/setLevel request
type SetLevelParams struct {
	Level LoggingLevel `json:"level"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *SetLevelParams) UnmarshalJSON(data []byte) error {
	type params SetLevelParams
	var w params
	if err := decodeObject(data, &w, "SetLevelParams", "level"); err != nil {
		return err
	}
	*p = SetLevelParams(w)
	return nil
}
