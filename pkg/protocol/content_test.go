package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalToolResultContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ToolResultContent
		wantErr error
	}{
		{
			name:  "text",
			input: `{"type":"text","text":"hi"}`,
			want:  TextContent{Text: "hi"},
		},
		{
			name:  "image",
			input: `{"type":"image","data":"QQ==","mimeType":"image/png"}`,
			want:  ImageContent{Data: "QQ==", MimeType: "image/png"},
		},
		{
			name:  "resource reference",
			input: `{"type":"resource","resource":"file:///tmp/a.txt"}`,
			want:  ResourceReference{URI: "file:///tmp/a.txt"},
		},
		{
			name:    "unknown tag",
			input:   `{"type":"bogus"}`,
			wantErr: ErrUnknownContentType,
		},
		{
			name:    "missing tag",
			input:   `{"text":"hi"}`,
			wantErr: ErrMissingContentType,
		},
		{
			name:    "null tag",
			input:   `{"type":null,"text":"hi"}`,
			wantErr: ErrMissingContentType,
		},
		{
			name:    "text without text",
			input:   `{"type":"text"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "image without mime type",
			input:   `{"type":"image","data":"QQ=="}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "resource body tag is not tool content",
			input:   `{"type":"blob","blob":"QQ==","uri":"file:///a"}`,
			wantErr: ErrUnknownContentType,
		},
		{
			name:    "non-string tag",
			input:   `{"type":1}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "not an object",
			input:   `"text"`,
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalToolResultContent([]byte(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			data, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))
		})
	}
}

func TestUnmarshalSamplingContent_RejectsResource(t *testing.T) {
	_, err := UnmarshalSamplingContent([]byte(`{"type":"resource","resource":"file:///a"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownContentType))

	text, err := UnmarshalSamplingContent([]byte(`{"type":"text","text":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, NewTextContent("hello"), text)

	image, err := UnmarshalSamplingContent([]byte(`{"type":"image","data":"QQ==","mimeType":"image/jpeg"}`))
	require.NoError(t, err)
	assert.Equal(t, ContentTypeImage, image.ContentType())
}

func TestUnmarshalPromptContent(t *testing.T) {
	for _, input := range []string{
		`{"type":"text","text":"hello"}`,
		`{"type":"image","data":"QQ==","mimeType":"image/png"}`,
		`{"type":"resource","resource":"db://users/1"}`,
	} {
		content, err := UnmarshalPromptContent([]byte(input))
		require.NoError(t, err, input)

		data, err := json.Marshal(content)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(data))
	}

	_, err := UnmarshalPromptContent([]byte(`{"type":"audio","data":"QQ=="}`))
	assert.True(t, errors.Is(err, ErrUnknownContentType))
}

func TestUnmarshalResourceContents(t *testing.T) {
	text, err := UnmarshalResourceContents([]byte(`{"type":"text","uri":"file:///a.txt","text":"body"}`))
	require.NoError(t, err)
	assert.Equal(t, TextResourceContents{URI: "file:///a.txt", Text: "body"}, text)
	assert.Equal(t, "file:///a.txt", text.ResourceURI())

	blob, err := UnmarshalResourceContents([]byte(`{"type":"blob","uri":"file:///a.bin","blob":"AAE=","mimeType":"application/octet-stream"}`))
	require.NoError(t, err)
	require.IsType(t, BlobResourceContents{}, blob)
	raw, err := blob.(BlobResourceContents).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, raw)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"image is not a resource body", `{"type":"image","data":"QQ==","mimeType":"image/png"}`, ErrUnknownContentType},
		{"text without uri", `{"type":"text","text":"body"}`, ErrMissingField},
		{"blob without blob", `{"type":"blob","uri":"file:///a.bin"}`, ErrMissingField},
		{"no tag", `{"uri":"file:///a.txt","text":"body"}`, ErrMissingContentType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalResourceContents([]byte(tt.input))
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestContentVariant_TagMismatch(t *testing.T) {
	var text TextContent
	err := json.Unmarshal([]byte(`{"type":"image","text":"hi"}`), &text)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownContentType))

	var ref ResourceReference
	err = json.Unmarshal([]byte(`{"resource":"file:///a"}`), &ref)
	assert.True(t, errors.Is(err, ErrMissingContentType))
}

func TestContentConstructors(t *testing.T) {
	image := NewImageContentFromBytes([]byte("A"), "image/png")
	assert.Equal(t, "QQ==", image.Data)

	raw, err := image.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), raw)

	_, err = NewImageContent("not base64!", "image/png").Bytes()
	assert.Error(t, err)

	body := NewTextResourceContents("file:///notes.md", "# Notes")
	assert.Equal(t, "text/plain", body.MimeType)
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text","uri":"file:///notes.md","mimeType":"text/plain","text":"# Notes"}`, string(data))

	blob := NewBlobResourceContentsFromBytes("file:///a.bin", []byte{0xff}, "")
	data, err = json.Marshal(blob)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"blob","uri":"file:///a.bin","blob":"/w=="}`, string(data))
}

func TestContentUnions_AreDistinct(t *testing.T) {
	var (
		_ ToolResultContent = TextContent{}
		_ ToolResultContent = ImageContent{}
		_ ToolResultContent = ResourceReference{}
		_ PromptContent     = TextContent{}
		_ PromptContent     = ImageContent{}
		_ PromptContent     = ResourceReference{}
		_ SamplingContent   = TextContent{}
		_ SamplingContent   = ImageContent{}
		_ ResourceContents  = TextResourceContents{}
		_ ResourceContents  = BlobResourceContents{}
	)

	var ref interface{} = ResourceReference{}
	_, isSampling := ref.(SamplingContent)
	assert.False(t, isSampling, "resource references must not be sampling content")

	var body interface{} = TextResourceContents{}
	_, isTool := body.(ToolResultContent)
	assert.False(t, isTool, "resource bodies must not be tool result content")
}
