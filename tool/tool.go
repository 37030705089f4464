// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"reflect"
	"strings"

	"github.com/ryichk/simple-agent-go/model"
)

// Tool represents a tool that can be used by agents
type Tool interface {
	Name() string
	Description() string

	// ParamsJSONSchema returns the JSON schema for the tool's parameters
	ParamsJSONSchema() map[string]any

	// Invoke executes the tool
	Invoke(ctx context.Context, paramsJSON string) (string, error)
}

// Definition describes t in the form the model expects
func Definition(t Tool) model.ToolDefinition {
	return model.ToolDefinition{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.ParamsJSONSchema(),
	}
}

// Definitions describes every tool in tools
func Definitions(tools []Tool) []model.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = Definition(t)
	}
	return defs
}

// Find returns the tool called name
func Find(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// SchemaFor generates a JSON schema object for the parameter struct type T.
// Field names follow json tags; fields tagged `json:",omitempty"` are optional
// and a `description` tag is copied into the property.
func SchemaFor[T any]() map[string]any {
	return generateTypeSchema(reflect.TypeOf((*T)(nil)).Elem())
}

// generateTypeSchema generates JSON schema from type
func generateTypeSchema(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	schema := map[string]any{}

	switch t.Kind() {
	case reflect.String:
		schema["type"] = "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		schema["type"] = "integer"
	case reflect.Float32, reflect.Float64:
		schema["type"] = "number"
	case reflect.Bool:
		schema["type"] = "boolean"
	case reflect.Slice, reflect.Array:
		schema["type"] = "array"
		schema["items"] = generateTypeSchema(t.Elem())
	case reflect.Map:
		schema["type"] = "object"
	case reflect.Struct:
		properties := map[string]any{}
		required := []string{}

		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			name := field.Name
			optional := false
			if tag, ok := field.Tag.Lookup("json"); ok {
				parts := strings.Split(tag, ",")
				if parts[0] == "-" {
					continue
				}
				if parts[0] != "" {
					name = parts[0]
				}
				for _, opt := range parts[1:] {
					if opt == "omitempty" {
						optional = true
					}
				}
			}

			prop := generateTypeSchema(field.Type)
			if desc := field.Tag.Get("description"); desc != "" {
				prop["description"] = desc
			}
			properties[name] = prop
			if !optional {
				required = append(required, name)
			}
		}

		schema["type"] = "object"
		schema["properties"] = properties
		schema["required"] = required
	default:
		// interfaces, channels and the like are passed as strings
		schema["type"] = "string"
	}

	return schema
}
