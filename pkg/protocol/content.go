package protocol

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Content type tags carried under the "type" key
const (
	ContentTypeText     = "text"
	ContentTypeImage    = "image"
	ContentTypeResource = "resource"
	ContentTypeBlob     = "blob"
)

// The four unions below are deliberately separate closed sets. Payload
// structs may belong to several of them, but each union decodes through its
// own tag table, so adding a variant to one never widens another.

// ToolResultContent is one block of a tool call result: TextContent,
// ImageContent or ResourceReference.
type ToolResultContent interface {
	ContentType() string
	isToolResultContent()
}

// PromptContent is the content of a prompt message: TextContent,
// ImageContent or ResourceReference.
type PromptContent interface {
	ContentType() string
	isPromptContent()
}

// SamplingContent is the content of a sampling message: TextContent or
// ImageContent. Sampling messages never reference server resources.
type SamplingContent interface {
	ContentType() string
	isSamplingContent()
}

// ResourceContents is one body block of a read resource: TextResourceContents
// or BlobResourceContents.
type ResourceContents interface {
	ContentType() string
	ResourceURI() string
	isResourceContents()
}

// TextContent is plain text
type TextContent struct {
	Text string `json:"text"`
}

// NewTextContent creates text content
func NewTextContent(text string) TextContent {
	return TextContent{Text: text}
}

// ContentType returns "text"
func (TextContent) ContentType() string { return ContentTypeText }

func (TextContent) isToolResultContent() {}
func (TextContent) isPromptContent()     {}
func (TextContent) isSamplingContent()   {}

// MarshalJSON implements json.Marshaler
func (c TextContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{ContentTypeText, c.Text})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *TextContent) UnmarshalJSON(data []byte) error {
	type text TextContent
	var w text
	if err := decodeTagged(data, &w, "TextContent", ContentTypeText, "text"); err != nil {
		return err
	}
	*c = TextContent(w)
	return nil
}

// ImageContent is a base64 encoded image
type ImageContent struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// NewImageContent creates image content from already encoded base64 data
func NewImageContent(data, mimeType string) ImageContent {
	return ImageContent{Data: data, MimeType: mimeType}
}

// NewImageContentFromBytes base64-encodes raw image bytes
func NewImageContentFromBytes(raw []byte, mimeType string) ImageContent {
	return ImageContent{Data: base64.StdEncoding.EncodeToString(raw), MimeType: mimeType}
}

// Bytes decodes the base64 payload
func (c ImageContent) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(c.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return b, nil
}

// ContentType returns "image"
func (ImageContent) ContentType() string { return ContentTypeImage }

func (ImageContent) isToolResultContent() {}
func (ImageContent) isPromptContent()     {}
func (ImageContent) isSamplingContent()   {}

// MarshalJSON implements json.Marshaler
func (c ImageContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Data     string `json:"data"`
		MimeType string `json:"mimeType"`
	}{ContentTypeImage, c.Data, c.MimeType})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ImageContent) UnmarshalJSON(data []byte) error {
	type image ImageContent
	var w image
	if err := decodeTagged(data, &w, "ImageContent", ContentTypeImage, "data", "mimeType"); err != nil {
		return err
	}
	*c = ImageContent(w)
	return nil
}

// ResourceReference points at a server resource by URI
type ResourceReference struct {
	URI string `json:"resource"`
}

// NewResourceReference creates a resource reference
func NewResourceReference(uri string) ResourceReference {
	return ResourceReference{URI: uri}
}

// ContentType returns "resource"
func (ResourceReference) ContentType() string { return ContentTypeResource }

func (ResourceReference) isToolResultContent() {}
func (ResourceReference) isPromptContent()     {}

// MarshalJSON implements json.Marshaler
func (c ResourceReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Resource string `json:"resource"`
	}{ContentTypeResource, c.URI})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ResourceReference) UnmarshalJSON(data []byte) error {
	type ref ResourceReference
	var w ref
	if err := decodeTagged(data, &w, "ResourceReference", ContentTypeResource, "resource"); err != nil {
		return err
	}
	*c = ResourceReference(w)
	return nil
}

// TextResourceContents is a textual resource body
type TextResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// NewTextResourceContents creates a text/plain resource body
func NewTextResourceContents(uri, text string) TextResourceContents {
	return TextResourceContents{URI: uri, MimeType: "text/plain", Text: text}
}

// ContentType returns "text"
func (TextResourceContents) ContentType() string { return ContentTypeText }

// ResourceURI returns the URI of the resource the body belongs to
func (c TextResourceContents) ResourceURI() string { return c.URI }

func (TextResourceContents) isResourceContents() {}

// MarshalJSON implements json.Marshaler
func (c TextResourceContents) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		URI      string `json:"uri"`
		MimeType string `json:"mimeType,omitempty"`
		Text     string `json:"text"`
	}{ContentTypeText, c.URI, c.MimeType, c.Text})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *TextResourceContents) UnmarshalJSON(data []byte) error {
	type body TextResourceContents
	var w body
	if err := decodeTagged(data, &w, "TextResourceContents", ContentTypeText, "text", "uri"); err != nil {
		return err
	}
	*c = TextResourceContents(w)
	return nil
}

// BlobResourceContents is a base64 encoded binary resource body
type BlobResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Blob     string `json:"blob"`
}

// NewBlobResourceContents creates a binary resource body from base64 data
func NewBlobResourceContents(uri, blob, mimeType string) BlobResourceContents {
	return BlobResourceContents{URI: uri, MimeType: mimeType, Blob: blob}
}

// NewBlobResourceContentsFromBytes base64-encodes raw bytes into a resource body
func NewBlobResourceContentsFromBytes(uri string, raw []byte, mimeType string) BlobResourceContents {
	return NewBlobResourceContents(uri, base64.StdEncoding.EncodeToString(raw), mimeType)
}

// Bytes decodes the base64 payload
func (c BlobResourceContents) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(c.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob: %w", err)
	}
	return b, nil
}

// ContentType returns "blob"
func (BlobResourceContents) ContentType() string { return ContentTypeBlob }

// ResourceURI returns the URI of the resource the body belongs to
func (c BlobResourceContents) ResourceURI() string { return c.URI }

func (BlobResourceContents) isResourceContents() {}

// MarshalJSON implements json.Marshaler
func (c BlobResourceContents) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		URI      string `json:"uri"`
		MimeType string `json:"mimeType,omitempty"`
		Blob     string `json:"blob"`
	}{ContentTypeBlob, c.URI, c.MimeType, c.Blob})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *BlobResourceContents) UnmarshalJSON(data []byte) error {
	type body BlobResourceContents
	var w body
	if err := decodeTagged(data, &w, "BlobResourceContents", ContentTypeBlob, "blob", "uri"); err != nil {
		return err
	}
	*c = BlobResourceContents(w)
	return nil
}

// contentTag extracts the "type" discriminator of a union member.
func contentTag(data []byte, union string) (string, error) {
	obj, err := rawObject(data, union)
	if err != nil {
		return "", err
	}
	raw, ok := obj["type"]
	if !ok || isNull(raw) {
		return "", decodeErr(union, "type", ErrMissingContentType)
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", decodeErr(union, "type", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	return tag, nil
}

// decodeTagged decodes a variant whose tag must equal want.
func decodeTagged(data []byte, v interface{}, typ, want string, required ...string) error {
	tag, err := contentTag(data, typ)
	if err != nil {
		return err
	}
	if tag != want {
		return decodeErr(typ, "type", fmt.Errorf("%w: %q, want %q", ErrUnknownContentType, tag, want))
	}
	return decodeObject(data, v, typ, required...)
}

func unknownTag(union, tag string) error {
	return decodeErr(union, "type", fmt.Errorf("%w: %q", ErrUnknownContentType, tag))
}

// UnmarshalToolResultContent decodes one tool result content block
func UnmarshalToolResultContent(data []byte) (ToolResultContent, error) {
	tag, err := contentTag(data, "ToolResultContent")
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText:
		var c TextContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeImage:
		var c ImageContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeResource:
		var c ResourceReference
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, unknownTag("ToolResultContent", tag)
	}
}

// UnmarshalPromptContent decodes the content of one prompt message
func UnmarshalPromptContent(data []byte) (PromptContent, error) {
	tag, err := contentTag(data, "PromptContent")
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText:
		var c TextContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeImage:
		var c ImageContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeResource:
		var c ResourceReference
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, unknownTag("PromptContent", tag)
	}
}

// UnmarshalSamplingContent decodes the content of one sampling message
func UnmarshalSamplingContent(data []byte) (SamplingContent, error) {
	tag, err := contentTag(data, "SamplingContent")
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText:
		var c TextContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeImage:
		var c ImageContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, unknownTag("SamplingContent", tag)
	}
}

// UnmarshalResourceContents decodes one resource body block
func UnmarshalResourceContents(data []byte) (ResourceContents, error) {
	tag, err := contentTag(data, "ResourceContents")
	if err != nil {
		return nil, err
	}
	switch tag {
	case ContentTypeText:
		var c TextResourceContents
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ContentTypeBlob:
		var c BlobResourceContents
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, unknownTag("ResourceContents", tag)
	}
}

// decodeList decodes a JSON array member with the given element decoder.
// A nil result is normalized to an empty, non-nil slice.
func decodeList[T any](raw json.RawMessage, typ, field string, decode func([]byte) (T, error)) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, decodeErr(typ, field, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
