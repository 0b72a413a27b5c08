package protocol

import (
	"encoding/json"
	"fmt"
)

// Bool returns a pointer to v, for optional capability flags
func Bool(v bool) *bool {
	return &v
}

// ToolsCapability advertises tool support
type ToolsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// ResourcesCapability advertises resource support
type ResourcesCapability struct {
	Subscribe   *bool `json:"subscribe,omitempty"`
	ListChanged *bool `json:"listChanged,omitempty"`
}

// PromptsCapability advertises prompt template support
type PromptsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// LoggingCapability advertises log message support. Presence is the signal.
type LoggingCapability struct{}

// RootsCapability advertises client root support
type RootsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// SamplingCapability advertises client sampling support. Presence is the signal.
type SamplingCapability struct{}

// ServerCapabilities are advertised by the server during initialization.
// A nil sub-capability means the feature is not supported; a non-nil one,
// even with every flag unset, means it is. An empty Experimental map is
// omitted, so a received "experimental": {} is not echoed back.
type ServerCapabilities struct {
	Tools        *ToolsCapability           `json:"tools,omitempty"`
	Resources    *ResourcesCapability       `json:"resources,omitempty"`
	Prompts      *PromptsCapability         `json:"prompts,omitempty"`
	Logging      *LoggingCapability         `json:"logging,omitempty"`
	Experimental map[string]json.RawMessage `json:"experimental,omitempty"`
}

// NewServerCapabilities returns capabilities declaring nothing beyond the baseline
func NewServerCapabilities() *ServerCapabilities {
	return &ServerCapabilities{Experimental: map[string]json.RawMessage{}}
}

// SupportsTools reports whether tools are advertised
func (c *ServerCapabilities) SupportsTools() bool { return c != nil && c.Tools != nil }

// SupportsResources reports whether resources are advertised
func (c *ServerCapabilities) SupportsResources() bool { return c != nil && c.Resources != nil }

// SupportsResourceSubscriptions reports whether resource subscriptions are advertised
func (c *ServerCapabilities) SupportsResourceSubscriptions() bool {
	return c.SupportsResources() && c.Resources.Subscribe != nil && *c.Resources.Subscribe
}

// SupportsPrompts reports whether prompts are advertised
func (c *ServerCapabilities) SupportsPrompts() bool { return c != nil && c.Prompts != nil }

// SupportsLogging reports whether logging is advertised
func (c *ServerCapabilities) SupportsLogging() bool { return c != nil && c.Logging != nil }

// SetExperimental records an experimental extension
func (c *ServerCapabilities) SetExperimental(name string, value interface{}) error {
	raw, err := experimentalValue(value)
	if err != nil {
		return err
	}
	if c.Experimental == nil {
		c.Experimental = map[string]json.RawMessage{}
	}
	c.Experimental[name] = raw
	return nil
}

// ClientCapabilities are sent by the client during initialization
type ClientCapabilities struct {
	Roots        *RootsCapability           `json:"roots,omitempty"`
	Sampling     *SamplingCapability        `json:"sampling,omitempty"`
	Experimental map[string]json.RawMessage `json:"experimental,omitempty"`
}

// NewClientCapabilities returns capabilities declaring nothing beyond the baseline
func NewClientCapabilities() *ClientCapabilities {
	return &ClientCapabilities{Experimental: map[string]json.RawMessage{}}
}

// SupportsRoots reports whether roots are advertised
func (c *ClientCapabilities) SupportsRoots() bool { return c != nil && c.Roots != nil }

// SupportsSampling reports whether sampling is advertised
func (c *ClientCapabilities) SupportsSampling() bool { return c != nil && c.Sampling != nil }

// SetExperimental records an experimental extension
func (c *ClientCapabilities) SetExperimental(name string, value interface{}) error {
	raw, err := experimentalValue(value)
	if err != nil {
		return err
	}
	if c.Experimental == nil {
		c.Experimental = map[string]json.RawMessage{}
	}
	c.Experimental[name] = raw
	return nil
}

func experimentalValue(value interface{}) (json.RawMessage, error) {
	raw, err := marshalPayload(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal experimental capability: %w", err)
	}
	if raw == nil {
		raw = json.RawMessage("{}")
	}
	return raw, nil
}

// Implementation identifies a client or server
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Implementation) UnmarshalJSON(data []byte) error {
	type implementation Implementation
	var w implementation
	if err := decodeObject(data, &w, "Implementation", "name", "version"); err != nil {
		return err
	}
	*i = Implementation(w)
	return nil
}

// InitializeParams defines the parameters for the initialize request
type InitializeParams struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      Implementation     `json:"clientInfo"`
}

// NewInitializeParams stamps the current protocol version
func NewInitializeParams(client Implementation, caps ClientCapabilities) *InitializeParams {
	return &InitializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
		ClientInfo:      client,
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (p *InitializeParams) UnmarshalJSON(data []byte) error {
	type params InitializeParams
	var w params
	if err := decodeObject(data, &w, "InitializeParams", "protocolVersion", "capabilities", "clientInfo"); err != nil {
		return err
	}
	*p = InitializeParams(w)
	return nil
}

// InitializeResult defines the response for the initialize request
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}

// NewInitializeResult stamps the current protocol version
func NewInitializeResult(server Implementation, caps ServerCapabilities, instructions string) *InitializeResult {
	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
		ServerInfo:      server,
		Instructions:    instructions,
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (r *InitializeResult) UnmarshalJSON(data []byte) error {
	type result InitializeResult
	var w result
	if err := decodeObject(data, &w, "InitializeResult", "protocolVersion", "capabilities", "serverInfo"); err != nil {
		return err
	}
	*r = InitializeResult(w)
	return nil
}

// EmptyResult acknowledges requests that return no data, such as ping
type EmptyResult struct{}

// PingParams are the (empty) parameters of a ping request
type PingParams struct{}
