// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryichk/simple-agent-go/model"
)

type addParams struct {
	A int `json:"a" description:"First number"`
	B int `json:"b" description:"Second number"`
}

type searchParams struct {
	Query   string   `json:"query"`
	Tags    []string `json:"tags,omitempty"`
	Limit   *int     `json:"limit,omitempty"`
	Verbose bool
	Ignored string `json:"-"`
	hidden  string
}

func newAddTool(t *testing.T) Tool {
	t.Helper()
	tool, err := NewFunctionTool("add", "Adds two numbers together",
		func(_ context.Context, p addParams) (any, error) {
			return p.A + p.B, nil
		})
	require.NoError(t, err)
	return tool
}

func TestFunctionToolInvoke(t *testing.T) {
	tool := newAddTool(t)

	assert.Equal(t, "add", tool.Name())
	assert.Equal(t, "Adds two numbers together", tool.Description())

	result, err := tool.Invoke(context.Background(), `{"a": 2, "b": 3}`)
	require.NoError(t, err)
	assert.Equal(t, "5", result)
}

func TestFunctionToolStringResultIsNotQuoted(t *testing.T) {
	tool, err := NewFunctionTool("echo", "", func(_ context.Context, p struct {
		Text string `json:"text"`
	}) (any, error) {
		return "echo: " + p.Text, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "No description provided", tool.Description())

	result, err := tool.Invoke(context.Background(), `{"text":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", result)
}

func TestFunctionToolStructResultIsJSON(t *testing.T) {
	tool, err := NewFunctionTool("pair", "", func(_ context.Context, _ struct{}) (any, error) {
		return map[string]int{"x": 1}, nil
	})
	require.NoError(t, err)

	result, err := tool.Invoke(context.Background(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, result)
}

func TestFunctionToolInvalidJSON(t *testing.T) {
	tool := newAddTool(t)

	_, err := tool.Invoke(context.Background(), `{"a": "two"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse parameters")
}

func TestFunctionToolPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	tool, err := NewFunctionTool("fail", "", func(_ context.Context, _ struct{}) (any, error) {
		return nil, boom
	})
	require.NoError(t, err)

	_, err = tool.Invoke(context.Background(), "{}")
	assert.ErrorIs(t, err, boom)
}

func TestNewFunctionToolValidation(t *testing.T) {
	_, err := NewFunctionTool("  ", "", func(_ context.Context, _ struct{}) (any, error) { return nil, nil })
	assert.Error(t, err)

	_, err = NewFunctionTool[struct{}]("nil", "", nil)
	assert.Error(t, err)
}

func TestSchemaFor(t *testing.T) {
	schema := SchemaFor[addParams]()

	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "integer", "description": "First number"},
			"b": map[string]any{"type": "integer", "description": "Second number"},
		},
		"required": []string{"a", "b"},
	}, schema)
}

func TestSchemaForOptionalAndNestedFields(t *testing.T) {
	schema := SchemaFor[searchParams]()

	props := schema["properties"].(map[string]any)
	assert.Len(t, props, 4)
	assert.Equal(t, map[string]any{"type": "string"}, props["query"])
	assert.Equal(t, map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}, props["tags"])
	assert.Equal(t, map[string]any{"type": "integer"}, props["limit"])
	assert.Equal(t, map[string]any{"type": "boolean"}, props["Verbose"])
	assert.Equal(t, []string{"query", "Verbose"}, schema["required"])
}

func TestDefinitionsAndFind(t *testing.T) {
	add := newAddTool(t)
	tools := []Tool{add, Calculator()}

	defs := Definitions(tools)
	require.Len(t, defs, 2)
	assert.Equal(t, model.ToolDefinition{
		Name:        "add",
		Description: "Adds two numbers together",
		Parameters:  add.ParamsJSONSchema(),
	}, defs[0])
	assert.Equal(t, "calculator", defs[1].Name)

	assert.Nil(t, Definitions(nil))

	found, ok := Find(tools, "calculator")
	require.True(t, ok)
	assert.Equal(t, "calculator", found.Name())

	_, ok = Find(tools, "missing")
	assert.False(t, ok)
}
