// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/ryichk/simple-agent-go/model"
)

// FakeProvider is a scripted model.Provider. Each call consumes the next
// queued reply; once the queue is empty it answers with Default.
type FakeProvider struct {
	mu      sync.Mutex
	replies []reply
	calls   []Call

	// Default is returned when no reply is queued
	Default model.Response

	// Settings is returned by DefaultSettings
	Settings model.Settings
}

// Call records one CreateChatCompletion invocation
type Call struct {
	Messages []model.Message
	Settings model.Settings
}

type reply struct {
	resp *model.Response
	err  error
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Default: model.Response{
			Message:      model.Message{Role: model.RoleAssistant, Content: "default response"},
			FinishReason: "stop",
			Usage:        model.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		},
	}
}

// AddText queues a plain assistant answer
func (p *FakeProvider) AddText(content string) *FakeProvider {
	return p.AddResponse(&model.Response{
		Message:      model.Message{Role: model.RoleAssistant, Content: content},
		FinishReason: "stop",
		Usage:        model.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	})
}

// AddToolCalls queues an assistant message requesting the given tool calls
func (p *FakeProvider) AddToolCalls(calls ...model.ToolCall) *FakeProvider {
	return p.AddResponse(&model.Response{
		Message:      model.Message{Role: model.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
		Usage:        model.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	})
}

func (p *FakeProvider) AddResponse(resp *model.Response) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, reply{resp: resp})
	return p
}

// AddError queues a failing call
func (p *FakeProvider) AddError(err error) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, reply{err: err})
	return p
}

func (p *FakeProvider) CreateChatCompletion(ctx context.Context, messages []model.Message, settings model.Settings) (*model.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, Call{
		Messages: append([]model.Message(nil), messages...),
		Settings: settings,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(p.replies) == 0 {
		resp := p.Default
		return &resp, nil
	}

	next := p.replies[0]
	p.replies = p.replies[1:]
	return next.resp, next.err
}

func (p *FakeProvider) DefaultSettings() model.Settings {
	return p.Settings
}

// Calls returns the recorded calls
func (p *FakeProvider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// ToolCall builds a function tool call
func ToolCall(id, name, args string) model.ToolCall {
	return model.ToolCall{
		ID:       id,
		Type:     "function",
		Function: model.FunctionCall{Name: name, Arguments: args},
	}
}
