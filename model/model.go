// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package model

import (
	"context"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Settings represents per-request generation settings
type Settings struct {
	// Model is the model id sent with the request. Providers fall back to their
	// configured model when empty.
	Model string

	// Temperature sets the generation temperature (0.0-2.0)
	Temperature float64

	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens int

	// TopP sets the top P for generation (0.0-1.0), zero leaves the server default
	TopP float64

	// StopSequences sets sequences that stop generation
	StopSequences []string

	// Tools sets the tool definitions offered to the model
	Tools []ToolDefinition
}

// Message represents a chat message
type Message struct {
	// Role is the role of the message (system, user, assistant, tool)
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

type FunctionCall struct {
	Name      string
	Arguments string
}

// ToolDefinition describes a callable function to the model
type ToolDefinition struct {
	Name        string
	Description string

	// Parameters is a JSON schema object
	Parameters map[string]any
}

// Provider is the interface for model providers
type Provider interface {
	CreateChatCompletion(ctx context.Context, messages []Message, settings Settings) (*Response, error)
}

// Response represents a model response
type Response struct {
	Message      Message
	FinishReason string
	Usage        Usage
}

// Usage represents token usage
type Usage struct {
	// PromptTokens is the number of tokens in the prompt
	PromptTokens int

	// CompletionTokens is the number of tokens in the completion
	CompletionTokens int

	// TotalTokens is the total number of tokens
	TotalTokens int
}

// Add accumulates other into u
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}
