package utils

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// SchemaOptions controls how ReflectInputSchema builds a schema
type SchemaOptions struct {
	// AllowAdditionalProperties leaves unknown argument keys allowed
	AllowAdditionalProperties bool
}

// ReflectInputSchema reflects the argument type T of a tool into the tool's
// input schema. Nested structs are inlined. Struct fields without omitempty
// are required, and jsonschema struct tags add keywords such as description
// or enum. T must be a named struct or a pointer to one; other types
// return an error.
func ReflectInputSchema[T any]() (protocol.ToolInputSchema, error) {
	return ReflectInputSchemaWithOptions[T](SchemaOptions{})
}

// ReflectInputSchemaWithOptions is ReflectInputSchema with options
func ReflectInputSchemaWithOptions[T any](opts SchemaOptions) (protocol.ToolInputSchema, error) {
	schema := protocol.ToolInputSchema{Type: "object"}

	// ExpandedStruct looks the schema up by type name, so only named
	// structs can be expanded.
	typ := reflect.TypeOf(new(T)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || typ.Name() == "" {
		return schema, fmt.Errorf("tool arguments must be a named struct, got %s", typ)
	}

	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: opts.AllowAdditionalProperties,
	}
	s := r.ReflectFromType(typ)
	if s == nil || s.Type != "object" {
		return schema, fmt.Errorf("tool arguments must be an object, got %T", *new(T))
	}

	if s.Properties != nil {
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			raw, err := json.Marshal(el.Value)
			if err != nil {
				return schema, fmt.Errorf("failed to marshal schema of property %q: %w", el.Key, err)
			}
			schema.SetProperty(el.Key, raw, false)
		}
	}
	if len(s.Required) > 0 {
		schema.Required = append([]string(nil), s.Required...)
	}

	extra := map[string]interface{}{}
	if s.AdditionalProperties != nil {
		extra["additionalProperties"] = s.AdditionalProperties
	}
	if s.Description != "" {
		extra["description"] = s.Description
	}
	for k, v := range extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return schema, fmt.Errorf("failed to marshal schema keyword %q: %w", k, err)
		}
		if schema.Extra == nil {
			schema.Extra = map[string]json.RawMessage{}
		}
		schema.Extra[k] = raw
	}

	return schema, nil
}

// MustReflectInputSchema is ReflectInputSchema that panics on error. It is
// meant for package-level tool declarations.
func MustReflectInputSchema[T any]() protocol.ToolInputSchema {
	schema, err := ReflectInputSchema[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

// MergeJSONObjects merges multiple JSON objects, with later objects taking
// precedence. The merge is shallow.
func MergeJSONObjects(objects ...json.RawMessage) (json.RawMessage, error) {
	if len(objects) == 0 {
		return json.RawMessage("{}"), nil
	}

	result := make(map[string]json.RawMessage)
	for i, obj := range objects {
		var current map[string]json.RawMessage
		if err := json.Unmarshal(obj, &current); err != nil {
			return nil, fmt.Errorf("failed to unmarshal object %d: %w", i, err)
		}
		if current == nil {
			return nil, fmt.Errorf("object %d is null", i)
		}

		for k, v := range current {
			result[k] = v
		}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal merged object: %w", err)
	}

	return data, nil
}
