// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package agent

import (
	"context"
	"fmt"

	"github.com/ryichk/simple-agent-go/model"
	"github.com/ryichk/simple-agent-go/tool"
	"github.com/ryichk/simple-agent-go/tracing"
)

// Invoke sends prompt to the model and runs tool calls until the model
// answers with text. Concurrent calls are serialized. The history is only
// extended when the invocation succeeds.
func (a *Agent) Invoke(ctx context.Context, prompt string) (*Result, error) {
	a.invokeMu.Lock()
	defer a.invokeMu.Unlock()

	if a.Provider == nil {
		return nil, ErrProviderRequired
	}

	span, ctx := tracing.StartSpan(ctx, "agent_invoke", map[string]any{
		"span_type": tracing.SpanTypeAgent,
		"agent":     a.Name,
	})
	defer span.End()

	result, err := a.run(ctx, prompt)
	if err != nil {
		span.SetAttribute("success", false)
		span.SetAttribute("error", err.Error())
		return nil, err
	}

	span.SetAttributes(map[string]any{
		"success":      true,
		"turns":        result.Turns,
		"total_tokens": result.Usage.TotalTokens,
	})
	return result, nil
}

func (a *Agent) run(ctx context.Context, prompt string) (*Result, error) {
	hooks := a.hooks()
	if err := hooks.OnStart(ctx, a, prompt); err != nil {
		return nil, fmt.Errorf("error in OnStart hook: %w", err)
	}

	maxTurns := a.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	settings := a.Settings
	settings.Tools = tool.Definitions(a.Tools)

	newMessages := []model.Message{{Role: model.RoleUser, Content: prompt}}
	result := &Result{}

	for turn := 1; turn <= maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := a.callModel(ctx, turn, a.conversation(newMessages), settings)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", turn, err)
		}

		result.Turns = turn
		result.Usage.Add(resp.Usage)

		msg := resp.Message
		if msg.Role == "" {
			msg.Role = model.RoleAssistant
		}
		newMessages = append(newMessages, msg)

		if len(msg.ToolCalls) > 0 {
			toolMessages, err := a.runTools(ctx, msg.ToolCalls)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", turn, err)
			}
			newMessages = append(newMessages, toolMessages...)
			continue
		}

		if msg.Content == "" {
			return nil, fmt.Errorf("turn %d: %w", turn, ErrEmptyResponse)
		}

		result.Output = msg.Content
		result.StopReason = resp.FinishReason
		result.Messages = newMessages

		if err := hooks.OnEnd(ctx, a, result); err != nil {
			return nil, fmt.Errorf("error in OnEnd hook: %w", err)
		}

		a.mu.Lock()
		a.history = append(a.history, newMessages...)
		a.mu.Unlock()

		return result, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrMaxTurnsExceeded, maxTurns)
}

func (a *Agent) hooks() Hooks {
	if a.Hooks != nil {
		return a.Hooks
	}
	return &BaseHooks{}
}

// conversation builds the full message list for the next model call
func (a *Agent) conversation(newMessages []model.Message) []model.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	messages := make([]model.Message, 0, len(a.history)+len(newMessages)+1)
	if a.SystemPrompt != "" {
		messages = append(messages, model.Message{Role: model.RoleSystem, Content: a.SystemPrompt})
	}
	messages = append(messages, a.history...)
	return append(messages, newMessages...)
}

func (a *Agent) callModel(ctx context.Context, turn int, messages []model.Message, settings model.Settings) (*model.Response, error) {
	span, ctx := tracing.StartSpan(ctx, "model_call", map[string]any{
		"span_type":      tracing.SpanTypeModel,
		"model":          settings.Model,
		"turn":           turn,
		"messages_count": len(messages),
	})
	defer span.End()

	resp, err := a.Provider.CreateChatCompletion(ctx, messages, settings)
	if err != nil {
		span.SetAttribute("error", err.Error())
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	if resp == nil {
		span.SetAttribute("error", ErrEmptyResponse.Error())
		return nil, ErrEmptyResponse
	}

	span.SetAttributes(map[string]any{
		"finish_reason": resp.FinishReason,
		"tool_calls":    len(resp.Message.ToolCalls),
		"total_tokens":  resp.Usage.TotalTokens,
	})
	return resp, nil
}

// runTools executes the requested tool calls in order. Tool failures are
// reported back to the model as text; only hook errors abort the loop.
func (a *Agent) runTools(ctx context.Context, calls []model.ToolCall) ([]model.Message, error) {
	messages := make([]model.Message, 0, len(calls))
	for _, tc := range calls {
		output, err := a.runTool(ctx, tc)
		if err != nil {
			return nil, err
		}
		messages = append(messages, model.Message{
			Role:       model.RoleTool,
			ToolCallID: tc.ID,
			Content:    output,
		})
	}
	return messages, nil
}

func (a *Agent) runTool(ctx context.Context, tc model.ToolCall) (string, error) {
	span, ctx := tracing.StartSpan(ctx, "tool_call", map[string]any{
		"span_type": tracing.SpanTypeTool,
		"tool_name": tc.Function.Name,
		"tool_args": tc.Function.Arguments,
	})
	defer span.End()

	t, ok := tool.Find(a.Tools, tc.Function.Name)
	if !ok {
		span.SetAttribute("error", "tool not found")
		a.log().WarnContext(ctx, "model requested unknown tool", "agent", a.Name, "tool", tc.Function.Name)
		return fmt.Sprintf("Error: Tool '%s' not found", tc.Function.Name), nil
	}

	hooks := a.hooks()
	if err := hooks.OnToolStart(ctx, a, t, tc.Function.Arguments); err != nil {
		return "", fmt.Errorf("error in OnToolStart hook: %w", err)
	}

	output, err := t.Invoke(ctx, tc.Function.Arguments)
	if err != nil {
		span.SetAttribute("error", err.Error())
		a.log().WarnContext(ctx, "tool failed", "agent", a.Name, "tool", t.Name(), "error", err)
		output = "Error: " + err.Error()
	} else {
		span.SetAttribute("success", true)
	}

	if err := hooks.OnToolEnd(ctx, a, t, output); err != nil {
		return "", fmt.Errorf("error in OnToolEnd hook: %w", err)
	}

	return output, nil
}
