package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessageParams(t *testing.T) {
	temperature := 0.2
	maxTokens := 256

	params := CreateMessageParams{
		Messages: []SamplingMessage{
			{Role: RoleUser, Content: NewTextContent("Summarize the log")},
			{Role: RoleUser, Content: NewImageContent("QQ==", "image/png")},
		},
		ModelPreferences: &ModelPreferences{
			Hints:        []ModelHint{{Name: "claude"}},
			CostPriority: &temperature,
		},
		SystemPrompt:   "Be brief.",
		IncludeContext: "thisServer",
		Temperature:    &temperature,
		MaxTokens:      &maxTokens,
		Stop:           []string{"\n\n"},
		Metadata:       json.RawMessage(`{"trace":"abc"}`),
	}

	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"messages": [
			{"role": "user", "content": {"type": "text", "text": "Summarize the log"}},
			{"role": "user", "content": {"type": "image", "data": "QQ==", "mimeType": "image/png"}}
		],
		"modelPreferences": {"hints": [{"name": "claude"}], "costPriority": 0.2},
		"systemPrompt": "Be brief.",
		"includeContext": "thisServer",
		"temperature": 0.2,
		"maxTokens": 256,
		"stop": ["\n\n"],
		"metadata": {"trace": "abc"}
	}`, string(data))

	var decoded CreateMessageParams
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, params, decoded)
}

func TestCreateMessageParams_Minimal(t *testing.T) {
	data, err := json.Marshal(CreateMessageParams{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[]}`, string(data))

	var decoded CreateMessageParams
	err = json.Unmarshal([]byte(`{"maxTokens":10}`), &decoded)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestSamplingMessage_RejectsResourceReference(t *testing.T) {
	var msg SamplingMessage
	err := json.Unmarshal([]byte(`{"role":"user","content":{"type":"resource","resource":"file:///secret"}}`), &msg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownContentType))
}

func TestCreateMessageResult(t *testing.T) {
	input := `{"message":{"role":"assistant","content":{"type":"text","text":"done"}},"model":"claude-3","stopReason":"endTurn"}`

	var result CreateMessageResult
	require.NoError(t, json.Unmarshal([]byte(input), &result))
	assert.Equal(t, RoleAssistant, result.Message.Role)
	assert.Equal(t, "claude-3", result.Model)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))

	err = json.Unmarshal([]byte(`{"model":"x"}`), &result)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestRoot(t *testing.T) {
	root := Root{URI: "file:///workspace", Name: "workspace"}

	data, err := json.Marshal(ListRootsResult{Roots: []Root{root}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roots":[{"uri":"file:///workspace","name":"workspace"}]}`, string(data))

	var decoded ListRootsResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []Root{root}, decoded.Roots)

	empty, err := json.Marshal(ListRootsResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roots":[]}`, string(empty))

	err = json.Unmarshal([]byte(`{"name":"nameless"}`), &root)
	assert.True(t, errors.Is(err, ErrMissingField))
}
