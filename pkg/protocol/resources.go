package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/yosida95/uritemplate/v3"
)

// Resource represents a resource in the MCP protocol
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

func (Resource) collectionKey() string { return "resources" }

// UnmarshalJSON implements json.Unmarshaler
func (r *Resource) UnmarshalJSON(data []byte) error {
	type resource Resource
	var w resource
	if err := decodeObject(data, &w, "Resource", "uri"); err != nil {
		return err
	}
	*r = Resource(w)
	return nil
}

// ResourceTemplate describes a family of resources addressed by an RFC 6570
// URI template
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

func (ResourceTemplate) collectionKey() string { return "resourceTemplates" }

// Expand fills the template with vars and returns the concrete resource URI
func (t ResourceTemplate) Expand(vars map[string]string) (string, error) {
	tmpl, err := uritemplate.New(t.URITemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri template %q: %w", t.URITemplate, err)
	}
	values := uritemplate.Values{}
	for k, v := range vars {
		values.Set(k, uritemplate.String(v))
	}
	uri, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("failed to expand uri template %q: %w", t.URITemplate, err)
	}
	return uri, nil
}

// Match reports whether uri is an expansion of the template and returns the
// extracted variables.
func (t ResourceTemplate) Match(uri string) (map[string]string, bool) {
	tmpl, err := uritemplate.New(t.URITemplate)
	if err != nil {
		return nil, false
	}
	values := tmpl.Match(uri)
	if values == nil {
		return nil, false
	}
	vars := make(map[string]string, len(values))
	for name, v := range values {
		vars[name] = v.String()
	}
	return vars, true
}

// UnmarshalJSON implements json.Unmarshaler
func (t *ResourceTemplate) UnmarshalJSON(data []byte) error {
	type template ResourceTemplate
	var w template
	if err := decodeObject(data, &w, "ResourceTemplate", "uriTemplate"); err != nil {
		return err
	}
	*t = ResourceTemplate(w)
	return nil
}

// ReadResourceParams defines parameters for reading a resource
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *ReadResourceParams) UnmarshalJSON(data []byte) error {
	type params ReadResourceParams
	var w params
	if err := decodeObject(data, &w, "ReadResourceParams", "uri"); err != nil {
		return err
	}
	*p = ReadResourceParams(w)
	return nil
}

// ReadResourceResult defines the response for reading a resource. One
// resource may yield several content blocks.
type ReadResourceResult struct {
	Contents []ResourceContents
}

// NewReadResourceResult creates a read result
func NewReadResourceResult(contents ...ResourceContents) *ReadResourceResult {
	if contents == nil {
		contents = []ResourceContents{}
	}
	return &ReadResourceResult{Contents: contents}
}

// MarshalJSON implements json.Marshaler
func (r ReadResourceResult) MarshalJSON() ([]byte, error) {
	contents := r.Contents
	if contents == nil {
		contents = []ResourceContents{}
	}
	return json.Marshal(struct {
		Contents []ResourceContents `json:"contents"`
	}{contents})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *ReadResourceResult) UnmarshalJSON(data []byte) error {
	const typ = "ReadResourceResult"
	var w struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := decodeObject(data, &w, typ, "contents"); err != nil {
		return err
	}
	contents, err := decodeList(w.Contents, typ, "contents", UnmarshalResourceContents)
	if err != nil {
		return err
	}
	*r = ReadResourceResult{Contents: contents}
	return nil
}

// SubscribeParams defines parameters for subscribing to resource updates
type SubscribeParams struct {
	URI string `json:"uri"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *SubscribeParams) UnmarshalJSON(data []byte) error {
	type params SubscribeParams
	var w params
	if err := decodeObject(data, &w, "SubscribeParams", "uri"); err != nil {
		return err
	}
	*p = SubscribeParams(w)
	return nil
}

// UnsubscribeParams defines parameters for cancelling a subscription
type UnsubscribeParams struct {
	URI string `json:"uri"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *UnsubscribeParams) UnmarshalJSON(data []byte) error {
	type params UnsubscribeParams
	var w params
	if err := decodeObject(data, &w, "UnsubscribeParams", "uri"); err != nil {
		return err
	}
	*p = UnsubscribeParams(w)
	return nil
}

// ResourceUpdatedParams defines parameters for the resource updated notification
type ResourceUpdatedParams struct {
	URI string `json:"uri"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *ResourceUpdatedParams) UnmarshalJSON(data []byte) error {
	type params ResourceUpdatedParams
	var w params
	if err := decodeObject(data, &w, "ResourceUpdatedParams", "uri"); err != nil {
		return err
	}
	*p = ResourceUpdatedParams(w)
	return nil
}
