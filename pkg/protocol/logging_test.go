package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLevel(t *testing.T) {
	levels := LoggingLevels()
	require.Len(t, levels, 8)

	for i, level := range levels {
		assert.Equal(t, i, level.Severity())
		assert.True(t, level.Valid())

		data, err := json.Marshal(level)
		require.NoError(t, err)

		var decoded LoggingLevel
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, level, decoded)
	}

	assert.Less(t, LoggingLevelWarning.Severity(), LoggingLevelError.Severity())
	assert.Equal(t, -1, LoggingLevel("verbose").Severity())

	var level LoggingLevel
	err := json.Unmarshal([]byte(`"verbose"`), &level)
	assert.True(t, errors.Is(err, ErrInvalidEnum))

	// Callers cannot mutate the level table
	levels[0] = "mutated"
	assert.Equal(t, LoggingLevelDebug, LoggingLevels()[0])
}

func TestLoggingMessageParams(t *testing.T) {
	params, err := NewLoggingMessageParams(LoggingLevelWarning, map[string]int{"retries": 3}, "db")
	require.NoError(t, err)

	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warning","data":{"retries":3},"logger":"db"}`, string(data))

	var decoded LoggingMessageParams
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *params, decoded)

	// Data is mandatory but may be null
	params, err = NewLoggingMessageParams(LoggingLevelInfo, nil, "")
	require.NoError(t, err)
	data, err = json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"info","data":null}`, string(data))

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, LoggingLevelInfo, decoded.Level)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing data", `{"level":"info"}`, ErrMissingField},
		{"missing level", `{"data":"x"}`, ErrMissingField},
		{"unknown level", `{"level":"trace","data":"x"}`, ErrInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.input), &decoded)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestSetLevelParams(t *testing.T) {
	req, err := NewRequest(IntID(1), MethodSetLevel, SetLevelParams{Level: LoggingLevelError})
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"logging/setLevel","params":{"level":"error"}}`, string(data))

	var params SetLevelParams
	require.NoError(t, req.BindParams(&params))
	assert.Equal(t, LoggingLevelError, params.Level)

	err = json.Unmarshal([]byte(`{}`), &params)
	assert.True(t, errors.Is(err, ErrMissingField))
}
