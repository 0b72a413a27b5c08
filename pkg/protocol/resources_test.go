package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource(t *testing.T) {
	resource := Resource{
		URI:         "test://resource/1",
		Name:        "Test Resource",
		Description: "A test resource",
		MimeType:    "text/plain",
	}

	// Test JSON serialization
	data, err := json.Marshal(resource)
	if err != nil {
		t.Fatalf("Failed to marshal Resource: %v", err)
	}

	assert.JSONEq(t, `{"uri":"test://resource/1","name":"Test Resource","description":"A test resource","mimeType":"text/plain"}`, string(data))

	var decoded Resource
	err = json.Unmarshal(data, &decoded)
	if err != nil {
		t.Fatalf("Failed to unmarshal Resource: %v", err)
	}

	// Verify decoded data
	if decoded != resource {
		t.Errorf("Expected decoded resource %+v, got %+v", resource, decoded)
	}

	// Only the URI is mandatory
	data, err = json.Marshal(Resource{URI: "test://resource/2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uri":"test://resource/2"}`, string(data))

	err = json.Unmarshal([]byte(`{"name":"no uri"}`), &decoded)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestResourceTemplate(t *testing.T) {
	tmpl := ResourceTemplate{
		URITemplate: "file:///logs/{service}/{day}.log",
		Name:        "Service logs",
		MimeType:    "text/plain",
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uriTemplate":"file:///logs/{service}/{day}.log","name":"Service logs","mimeType":"text/plain"}`, string(data))

	var decoded ResourceTemplate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tmpl, decoded)

	err = json.Unmarshal([]byte(`{"uri":"file:///a"}`), &decoded)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestResourceTemplate_ExpandMatch(t *testing.T) {
	tmpl := ResourceTemplate{URITemplate: "file:///logs/{service}/{day}.log"}

	uri, err := tmpl.Expand(map[string]string{"service": "api", "day": "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "file:///logs/api/2024-01-02.log", uri)

	vars, ok := tmpl.Match("file:///logs/api/2024-01-02.log")
	require.True(t, ok)
	assert.Equal(t, "api", vars["service"])
	assert.Equal(t, "2024-01-02", vars["day"])

	_, ok = tmpl.Match("https://example.com/other")
	assert.False(t, ok)

	broken := ResourceTemplate{URITemplate: "file:///{unclosed"}
	_, err = broken.Expand(nil)
	assert.Error(t, err)
	_, ok = broken.Match("file:///x")
	assert.False(t, ok)
}

func TestReadResourceResult(t *testing.T) {
	// One resource may fan out into several bodies
	result := NewReadResourceResult(
		NewTextResourceContents("file:///doc.md", "# Title"),
		NewBlobResourceContents("file:///doc.md", "QQ==", "image/png"),
	)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":[
		{"type":"text","uri":"file:///doc.md","mimeType":"text/plain","text":"# Title"},
		{"type":"blob","uri":"file:///doc.md","mimeType":"image/png","blob":"QQ=="}
	]}`, string(data))

	var decoded ReadResourceResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *result, decoded)

	empty, err := json.Marshal(ReadResourceResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":[]}`, string(empty))

	err = json.Unmarshal([]byte(`{}`), &decoded)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestReadResourceParams(t *testing.T) {
	var params ReadResourceParams
	require.NoError(t, json.Unmarshal([]byte(`{"uri":"file:///a"}`), &params))
	assert.Equal(t, "file:///a", params.URI)

	err := json.Unmarshal([]byte(`{}`), &params)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestSubscriptionParams(t *testing.T) {
	for _, target := range []interface{}{&SubscribeParams{}, &UnsubscribeParams{}, &ResourceUpdatedParams{}} {
		require.NoError(t, json.Unmarshal([]byte(`{"uri":"file:///watched"}`), target))

		data, err := json.Marshal(target)
		require.NoError(t, err)
		assert.JSONEq(t, `{"uri":"file:///watched"}`, string(data))

		err = json.Unmarshal([]byte(`{"uri":null}`), target)
		assert.True(t, errors.Is(err, ErrMissingField), "%T", target)
	}
}
