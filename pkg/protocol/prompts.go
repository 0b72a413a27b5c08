package protocol

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a prompt or sampling message
type Role string

// Message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// UnmarshalJSON implements json.Unmarshaler and rejects unknown roles
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return decodeErr("Role", "", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if !Role(s).Valid() {
		return decodeErr("Role", "", fmt.Errorf("%w: %q", ErrInvalidEnum, s))
	}
	*r = Role(s)
	return nil
}

// Prompt represents a prompt template in the MCP protocol
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

func (Prompt) collectionKey() string { return "prompts" }

// MarshalJSON implements json.Marshaler. A non-nil empty argument list is
// written as [] and a nil one is omitted.
func (p Prompt) MarshalJSON() ([]byte, error) {
	type prompt Prompt
	if p.Arguments == nil {
		return json.Marshal(prompt(p))
	}
	return json.Marshal(struct {
		prompt
		Arguments []PromptArgument `json:"arguments"`
	}{prompt(p), p.Arguments})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Prompt) UnmarshalJSON(data []byte) error {
	type prompt Prompt
	var w prompt
	if err := decodeObject(data, &w, "Prompt", "name"); err != nil {
		return err
	}
	*p = Prompt(w)
	return nil
}

// PromptArgument describes an argument accepted by a prompt template
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    *bool  `json:"required,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (a *PromptArgument) UnmarshalJSON(data []byte) error {
	type argument PromptArgument
	var w argument
	if err := decodeObject(data, &w, "PromptArgument", "name"); err != nil {
		return err
	}
	*a = PromptArgument(w)
	return nil
}

// GetPromptParams defines parameters for rendering a prompt
type GetPromptParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *GetPromptParams) UnmarshalJSON(data []byte) error {
	type params GetPromptParams
	var w params
	if err := decodeObject(data, &w, "GetPromptParams", "name"); err != nil {
		return err
	}
	*p = GetPromptParams(w)
	return nil
}

// PromptMessage is one role-tagged message of a rendered prompt
type PromptMessage struct {
	Role    Role
	Content PromptContent
}

// MarshalJSON implements json.Marshaler
func (m PromptMessage) MarshalJSON() ([]byte, error) {
	if m.Content == nil {
		return nil, fmt.Errorf("prompt message has no content")
	}
	return json.Marshal(struct {
		Role    Role          `json:"role"`
		Content PromptContent `json:"content"`
	}{m.Role, m.Content})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *PromptMessage) UnmarshalJSON(data []byte) error {
	var w struct {
		Role    Role            `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := decodeObject(data, &w, "PromptMessage", "role", "content"); err != nil {
		return err
	}
	content, err := UnmarshalPromptContent(w.Content)
	if err != nil {
		return err
	}
	*m = PromptMessage{Role: w.Role, Content: content}
	return nil
}

// GetPromptResult defines the response for rendering a prompt
type GetPromptResult struct {
	Description string
	Messages    []PromptMessage
}

// MarshalJSON implements json.Marshaler
func (r GetPromptResult) MarshalJSON() ([]byte, error) {
	messages := r.Messages
	if messages == nil {
		messages = []PromptMessage{}
	}
	return json.Marshal(struct {
		Description string          `json:"description,omitempty"`
		Messages    []PromptMessage `json:"messages"`
	}{r.Description, messages})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *GetPromptResult) UnmarshalJSON(data []byte) error {
	var w struct {
		Description string          `json:"description"`
		Messages    []PromptMessage `json:"messages"`
	}
	if err := decodeObject(data, &w, "GetPromptResult", "messages"); err != nil {
		return err
	}
	if w.Messages == nil {
		w.Messages = []PromptMessage{}
	}
	*r = GetPromptResult{Description: w.Description, Messages: w.Messages}
	return nil
}
