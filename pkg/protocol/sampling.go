package protocol

import (
	"encoding/json"
	"fmt"
)

// SamplingMessage is one message of a sampling conversation
type SamplingMessage struct {
	Role    Role
	Content SamplingContent
}

// MarshalJSON implements json.Marshaler
func (m SamplingMessage) MarshalJSON() ([]byte, error) {
	if m.Content == nil {
		return nil, fmt.Errorf("sampling message has no content")
	}
	return json.Marshal(struct {
		Role    Role            `json:"role"`
		Content SamplingContent `json:"content"`
	}{m.Role, m.Content})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *SamplingMessage) UnmarshalJSON(data []byte) error {
	var w struct {
		Role    Role            `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := decodeObject(data, &w, "SamplingMessage", "role", "content"); err != nil {
		return err
	}
	content, err := UnmarshalSamplingContent(w.Content)
	if err != nil {
		return err
	}
	*m = SamplingMessage{Role: w.Role, Content: content}
	return nil
}

// ModelHint names a preferred model or model family
type ModelHint struct {
	Name string `json:"name"`
}

// ModelPreferences guides the client's model selection. Priorities range
// from 0 to 1.
type ModelPreferences struct {
	Hints                []ModelHint `json:"hints,omitempty"`
	CostPriority         *float64    `json:"costPriority,omitempty"`
	SpeedPriority        *float64    `json:"speedPriority,omitempty"`
	IntelligencePriority *float64    `json:"intelligencePriority,omitempty"`
}

// CreateMessageParams defines parameters for the sampling/createMessage request
type CreateMessageParams struct {
	Messages         []SamplingMessage `json:"messages"`
	ModelPreferences *ModelPreferences `json:"modelPreferences,omitempty"`
	SystemPrompt     string            `json:"systemPrompt,omitempty"`
	IncludeContext   string            `json:"includeContext,omitempty"`
	Temperature      *float64          `json:"temperature,omitempty"`
	MaxTokens        *int              `json:"maxTokens,omitempty"`
	Stop             []string          `json:"stop,omitempty"`
	Metadata         json.RawMessage   `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (p CreateMessageParams) MarshalJSON() ([]byte, error) {
	type params CreateMessageParams
	w := params(p)
	if w.Messages == nil {
		w.Messages = []SamplingMessage{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler
func (p *CreateMessageParams) UnmarshalJSON(data []byte) error {
	type params CreateMessageParams
	var w params
	if err := decodeObject(data, &w, "CreateMessageParams", "messages"); err != nil {
		return err
	}
	if isNull(w.Metadata) {
		w.Metadata = nil
	}
	*p = CreateMessageParams(w)
	return nil
}

// CreateMessageResult defines the response for the sampling/createMessage request
type CreateMessageResult struct {
	Message    SamplingMessage `json:"message"`
	Model      string          `json:"model,omitempty"`
	StopReason string          `json:"stopReason,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *CreateMessageResult) UnmarshalJSON(data []byte) error {
	type result CreateMessageResult
	var w result
	if err := decodeObject(data, &w, "CreateMessageResult", "message"); err != nil {
		return err
	}
	*r = CreateMessageResult(w)
	return nil
}

// Root is a filesystem or URI root the client exposes to the server
type Root struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Root) UnmarshalJSON(data []byte) error {
	type root Root
	var w root
	if err := decodeObject(data, &w, "Root", "uri"); err != nil {
		return err
	}
	*r = Root(w)
	return nil
}

// ListRootsResult defines the response for the roots/list request
type ListRootsResult struct {
	Roots []Root `json:"roots"`
}

// MarshalJSON implements json.Marshaler
func (r ListRootsResult) MarshalJSON() ([]byte, error) {
	roots := r.Roots
	if roots == nil {
		roots = []Root{}
	}
	return json.Marshal(struct {
		Roots []Root `json:"roots"`
	}{roots})
}
