package protocol

import (
	"encoding/json"
	"fmt"
)

// Tool represents a tool in the MCP protocol
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema ToolInputSchema `json:"inputSchema"`
}

func (Tool) collectionKey() string { return "tools" }

// NewTool creates a tool whose input schema is an empty object schema
func NewTool(name, description string) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		InputSchema: ToolInputSchema{Type: "object"},
	}
}

// WithParameter attaches a string parameter to the tool's input schema
func (t *Tool) WithParameter(name, description string, required bool) *Tool {
	schema, _ := json.Marshal(map[string]string{
		"type":        "string",
		"description": description,
	})
	return t.WithProperty(name, schema, required)
}

// WithProperty attaches a parameter with an arbitrary JSON schema
func (t *Tool) WithProperty(name string, schema json.RawMessage, required bool) *Tool {
	t.InputSchema.SetProperty(name, schema, required)
	return t
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Tool) UnmarshalJSON(data []byte) error {
	type tool Tool
	var w tool
	if err := decodeObject(data, &w, "Tool", "name", "inputSchema"); err != nil {
		return err
	}
	*t = Tool(w)
	return nil
}

// ToolInputSchema is the JSON schema of a tool's arguments. Keywords other
// than type, properties and required are kept in Extra and written at the
// same level as the named fields.
type ToolInputSchema struct {
	Type       string
	Properties map[string]json.RawMessage
	Required   []string
	Extra      map[string]json.RawMessage
}

var schemaKeys = map[string]bool{"type": true, "properties": true, "required": true}

// SetProperty adds or replaces a property, initializing the properties map
// and required list on first use.
func (s *ToolInputSchema) SetProperty(name string, schema json.RawMessage, required bool) {
	if s.Properties == nil {
		s.Properties = map[string]json.RawMessage{}
	}
	s.Properties[name] = schema
	if !required {
		return
	}
	for _, r := range s.Required {
		if r == name {
			return
		}
	}
	s.Required = append(s.Required, name)
}

// MarshalJSON implements json.Marshaler. Named fields take precedence over
// Extra keys of the same name. Empty but non-nil properties and required
// are written, so a decoded schema encodes back to the same keys.
func (s ToolInputSchema) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(s.Extra)+3)
	for k, v := range s.Extra {
		if schemaKeys[k] {
			continue
		}
		obj[k] = v
	}

	typ := s.Type
	if typ == "" {
		typ = "object"
	}
	obj["type"] = typ
	if s.Properties != nil {
		obj["properties"] = s.Properties
	}
	if s.Required != nil {
		obj["required"] = s.Required
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler
func (s *ToolInputSchema) UnmarshalJSON(data []byte) error {
	const typ = "ToolInputSchema"
	obj, err := rawObject(data, typ)
	if err != nil {
		return err
	}
	if err := requireFields(obj, typ, "type"); err != nil {
		return err
	}

	var out ToolInputSchema
	if err := json.Unmarshal(obj["type"], &out.Type); err != nil {
		return decodeErr(typ, "type", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if raw, ok := obj["properties"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Properties); err != nil {
			return decodeErr(typ, "properties", fmt.Errorf("%w: %w", ErrMalformed, err))
		}
	}
	if raw, ok := obj["required"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Required); err != nil {
			return decodeErr(typ, "required", fmt.Errorf("%w: %w", ErrMalformed, err))
		}
	}
	for k, v := range obj {
		if schemaKeys[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = map[string]json.RawMessage{}
		}
		out.Extra[k] = v
	}

	*s = out
	return nil
}

// CallToolParams defines parameters for calling a tool
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// NewCallToolParams creates call parameters. Nil arguments are omitted.
func NewCallToolParams(name string, arguments interface{}) (*CallToolParams, error) {
	args, err := marshalPayload(arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool arguments: %w", err)
	}
	return &CallToolParams{Name: name, Arguments: args}, nil
}

// BindArguments decodes the tool arguments into v
func (p *CallToolParams) BindArguments(v interface{}) error {
	if len(p.Arguments) == 0 {
		return decodeErr("CallToolParams", "arguments", ErrMissingField)
	}
	return json.Unmarshal(p.Arguments, v)
}

// UnmarshalJSON implements json.Unmarshaler
func (p *CallToolParams) UnmarshalJSON(data []byte) error {
	type params CallToolParams
	var w params
	if err := decodeObject(data, &w, "CallToolParams", "name"); err != nil {
		return err
	}
	if isNull(w.Arguments) {
		w.Arguments = nil
	}
	*p = CallToolParams(w)
	return nil
}

// CallToolResult defines the response for tool calls. IsError reports a
// failure of the tool itself; it is independent of the JSON-RPC error of the
// enclosing response.
type CallToolResult struct {
	Content []ToolResultContent
	IsError *bool
}

// NewToolResult creates a successful tool result
func NewToolResult(content ...ToolResultContent) *CallToolResult {
	if content == nil {
		content = []ToolResultContent{}
	}
	return &CallToolResult{Content: content}
}

// NewToolErrorResult creates a tool result reporting a tool-level failure
func NewToolErrorResult(message string) *CallToolResult {
	return &CallToolResult{
		Content: []ToolResultContent{NewTextContent(message)},
		IsError: Bool(true),
	}
}

// Failed reports whether the tool flagged its result as an error
func (r *CallToolResult) Failed() bool {
	return r.IsError != nil && *r.IsError
}

// MarshalJSON implements json.Marshaler
func (r CallToolResult) MarshalJSON() ([]byte, error) {
	content := r.Content
	if content == nil {
		content = []ToolResultContent{}
	}
	return json.Marshal(struct {
		Content []ToolResultContent `json:"content"`
		IsError *bool               `json:"isError,omitempty"`
	}{content, r.IsError})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *CallToolResult) UnmarshalJSON(data []byte) error {
	const typ = "CallToolResult"
	var w struct {
		Content json.RawMessage `json:"content"`
		IsError *bool           `json:"isError"`
	}
	if err := decodeObject(data, &w, typ, "content"); err != nil {
		return err
	}
	content, err := decodeList(w.Content, typ, "content", UnmarshalToolResultContent)
	if err != nil {
		return err
	}
	*r = CallToolResult{Content: content, IsError: w.IsError}
	return nil
}
