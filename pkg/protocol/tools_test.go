package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	tool := NewTool("search", "Search the index").
		WithParameter("query", "Search terms", true).
		WithParameter("lang", "Language filter", false)

	// Verify fields
	if tool.Name != "search" {
		t.Errorf("Expected Name to be 'search', got %q", tool.Name)
	}

	if len(tool.InputSchema.Properties) != 2 {
		t.Errorf("Expected 2 properties, got %d", len(tool.InputSchema.Properties))
	}

	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "query" {
		t.Errorf("Expected required to be ['query'], got %v", tool.InputSchema.Required)
	}

	// Test JSON serialization
	data, err := json.Marshal(tool)
	if err != nil {
		t.Fatalf("Failed to marshal Tool: %v", err)
	}

	assert.JSONEq(t, `{
		"name": "search",
		"description": "Search the index",
		"inputSchema": {
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search terms"},
				"lang": {"type": "string", "description": "Language filter"}
			},
			"required": ["query"]
		}
	}`, string(data))

	var decoded Tool
	err = json.Unmarshal(data, &decoded)
	if err != nil {
		t.Fatalf("Failed to unmarshal Tool: %v", err)
	}

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestTool_OmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(Tool{Name: "noop"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"noop","inputSchema":{"type":"object"}}`, string(data))
}

func TestTool_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"minimal", `{"name":"a","inputSchema":{"type":"object"}}`, nil},
		{"missing name", `{"inputSchema":{"type":"object"}}`, ErrMissingField},
		{"missing schema", `{"name":"a"}`, ErrMissingField},
		{"schema without type", `{"name":"a","inputSchema":{}}`, ErrMissingField},
		{"properties not an object", `{"name":"a","inputSchema":{"type":"object","properties":[]}}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tool Tool
			err := json.Unmarshal([]byte(tt.input), &tool)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestToolInputSchema_ExtraKeywords(t *testing.T) {
	input := `{
		"type": "object",
		"properties": {"n": {"type": "integer", "minimum": 0}},
		"required": ["n"],
		"additionalProperties": false,
		"$schema": "https://json-schema.org/draft/2020-12/schema"
	}`

	var schema ToolInputSchema
	require.NoError(t, json.Unmarshal([]byte(input), &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"n"}, schema.Required)
	assert.Len(t, schema.Properties, 1)
	require.Len(t, schema.Extra, 2)
	assert.JSONEq(t, `false`, string(schema.Extra["additionalProperties"]))
	assert.NotContains(t, schema.Extra, "type")

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
}

func TestToolInputSchema_EmptyKeysRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty properties", `{"type":"object","properties":{}}`},
		{"empty required", `{"type":"object","required":[]}`},
		{"both empty", `{"type":"object","properties":{},"required":[]}`},
		{"both absent", `{"type":"object"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var first ToolInputSchema
			require.NoError(t, json.Unmarshal([]byte(tt.input), &first))

			data, err := json.Marshal(first)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))

			var second ToolInputSchema
			require.NoError(t, json.Unmarshal(data, &second))
			assert.Equal(t, first, second)
		})
	}
}

func TestToolInputSchema_NamedFieldsWin(t *testing.T) {
	schema := ToolInputSchema{
		Type:  "object",
		Extra: map[string]json.RawMessage{"type": json.RawMessage(`"array"`), "title": json.RawMessage(`"T"`)},
	}

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","title":"T"}`, string(data))
}

func TestToolInputSchema_SetProperty(t *testing.T) {
	var schema ToolInputSchema
	assert.Nil(t, schema.Properties)
	assert.Nil(t, schema.Required)

	schema.SetProperty("a", json.RawMessage(`{"type":"string"}`), true)
	schema.SetProperty("a", json.RawMessage(`{"type":"number"}`), true)
	schema.SetProperty("b", json.RawMessage(`{"type":"boolean"}`), false)

	assert.Equal(t, []string{"a"}, schema.Required)
	assert.JSONEq(t, `{"type":"number"}`, string(schema.Properties["a"]))
	assert.Len(t, schema.Properties, 2)
}

func TestCallToolParams(t *testing.T) {
	params, err := NewCallToolParams("search", map[string]interface{}{"query": "golang"})
	require.NoError(t, err)

	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"search","arguments":{"query":"golang"}}`, string(data))

	var decoded CallToolParams
	require.NoError(t, json.Unmarshal(data, &decoded))

	var args struct {
		Query string `json:"query"`
	}
	require.NoError(t, decoded.BindArguments(&args))
	assert.Equal(t, "golang", args.Query)

	// Arguments are optional
	params, err = NewCallToolParams("ping", nil)
	require.NoError(t, err)
	data, err = json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ping"}`, string(data))
	assert.Error(t, params.BindArguments(&args))

	err = json.Unmarshal([]byte(`{"arguments":{}}`), &decoded)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestCallToolResult(t *testing.T) {
	// One text block, isError unset
	result := NewToolResult(NewTextContent("42 results"))

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[{"type":"text","text":"42 results"}]}`, string(data))
	assert.NotContains(t, string(data), "isError")
	assert.False(t, result.Failed())

	var decoded CallToolResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Content, 1)
	assert.Equal(t, TextContent{Text: "42 results"}, decoded.Content[0])
	assert.Nil(t, decoded.IsError)
}

func TestCallToolResult_ToolFailure(t *testing.T) {
	result := NewToolErrorResult("file not found")
	assert.True(t, result.Failed())

	// A tool failure is still a successful JSON-RPC response
	resp, err := NewResponse(IntID(3), result)
	require.NoError(t, err)
	assert.False(t, resp.IsError())

	var decoded CallToolResult
	require.NoError(t, resp.BindResult(&decoded))
	assert.True(t, decoded.Failed())

	explicitFalse := CallToolResult{IsError: Bool(false)}
	data, err := json.Marshal(explicitFalse)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[],"isError":false}`, string(data))
	assert.False(t, explicitFalse.Failed())
}

func TestCallToolResult_MixedContent(t *testing.T) {
	input := `{"content":[
		{"type":"text","text":"see attached"},
		{"type":"image","data":"QQ==","mimeType":"image/png"},
		{"type":"resource","resource":"file:///report.pdf"}
	],"isError":false}`

	var result CallToolResult
	require.NoError(t, json.Unmarshal([]byte(input), &result))
	require.Len(t, result.Content, 3)
	assert.IsType(t, TextContent{}, result.Content[0])
	assert.IsType(t, ImageContent{}, result.Content[1])
	assert.IsType(t, ResourceReference{}, result.Content[2])

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))

	err = json.Unmarshal([]byte(`{"content":[{"type":"blob","blob":"QQ==","uri":"x"}]}`), &result)
	assert.True(t, errors.Is(err, ErrUnknownContentType))

	err = json.Unmarshal([]byte(`{"isError":true}`), &result)
	assert.True(t, errors.Is(err, ErrMissingField))
}
