// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FunctionTool wraps a typed Go function as a tool.
// Arguments are decoded from JSON into P before fn is called; the result is
// returned as is when it is a string and as JSON otherwise.
type FunctionTool[P any] struct {
	name         string
	description  string
	paramsSchema map[string]any
	fn           func(ctx context.Context, params P) (any, error)
}

// NewFunctionTool wraps fn as a tool called name.
//
// Example usage:
//
//	type weatherParams struct {
//		City string `json:"city" description:"City to look up"`
//	}
//
//	weatherTool, err := NewFunctionTool("get_weather", "Gets weather information for a city",
//		func(ctx context.Context, p weatherParams) (any, error) {
//			return "Sunny in " + p.City, nil
//		})
func NewFunctionTool[P any](name, description string, fn func(ctx context.Context, params P) (any, error)) (*FunctionTool[P], error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("tool name is required")
	}
	if fn == nil {
		return nil, fmt.Errorf("tool %s: function is nil", name)
	}
	if description == "" {
		description = "No description provided"
	}

	return &FunctionTool[P]{
		name:         name,
		description:  description,
		paramsSchema: SchemaFor[P](),
		fn:           fn,
	}, nil
}

func (t *FunctionTool[P]) Name() string {
	return t.name
}

func (t *FunctionTool[P]) Description() string {
	return t.description
}

// ParamsJSONSchema returns the JSON schema for the tool's parameters
func (t *FunctionTool[P]) ParamsJSONSchema() map[string]any {
	return t.paramsSchema
}

// Invoke executes the tool
func (t *FunctionTool[P]) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params P
	if strings.TrimSpace(paramsJSON) != "" {
		if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
			return "", fmt.Errorf("failed to parse parameters: %w", err)
		}
	}

	result, err := t.fn(ctx, params)
	if err != nil {
		return "", err
	}

	if s, ok := result.(string); ok {
		return s, nil
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(resultJSON), nil
}
