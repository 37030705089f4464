// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package agent

import (
	"context"
	"log/slog"

	"github.com/ryichk/simple-agent-go/tool"
)

// Hooks is the interface for agent lifecycle hooks.
// An error returned from a hook aborts the invocation.
type Hooks interface {
	// OnStart is called when the agent starts an invocation
	OnStart(ctx context.Context, agent *Agent, prompt string) error

	// OnEnd is called when the agent produced its final output
	OnEnd(ctx context.Context, agent *Agent, result *Result) error

	// OnToolStart is called before a tool runs
	OnToolStart(ctx context.Context, agent *Agent, tool tool.Tool, args string) error

	// OnToolEnd is called after a tool ran; output holds the text sent back to the model
	OnToolEnd(ctx context.Context, agent *Agent, tool tool.Tool, output string) error
}

// BaseHooks provides a no-op implementation of the Hooks interface
type BaseHooks struct{}

func (h *BaseHooks) OnStart(ctx context.Context, agent *Agent, prompt string) error {
	return nil
}

func (h *BaseHooks) OnEnd(ctx context.Context, agent *Agent, result *Result) error {
	return nil
}

func (h *BaseHooks) OnToolStart(ctx context.Context, agent *Agent, tool tool.Tool, args string) error {
	return nil
}

func (h *BaseHooks) OnToolEnd(ctx context.Context, agent *Agent, tool tool.Tool, output string) error {
	return nil
}

// LoggingHooks logs lifecycle events
type LoggingHooks struct {
	Logger *slog.Logger
}

func (h *LoggingHooks) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *LoggingHooks) OnStart(ctx context.Context, agent *Agent, prompt string) error {
	h.log().DebugContext(ctx, "agent started", "agent", agent.Name, "prompt_chars", len(prompt))
	return nil
}

func (h *LoggingHooks) OnEnd(ctx context.Context, agent *Agent, result *Result) error {
	h.log().DebugContext(ctx, "agent finished",
		"agent", agent.Name,
		"turns", result.Turns,
		"total_tokens", result.Usage.TotalTokens,
	)
	return nil
}

func (h *LoggingHooks) OnToolStart(ctx context.Context, agent *Agent, tool tool.Tool, args string) error {
	h.log().InfoContext(ctx, "tool started", "agent", agent.Name, "tool", tool.Name())
	return nil
}

func (h *LoggingHooks) OnToolEnd(ctx context.Context, agent *Agent, tool tool.Tool, output string) error {
	h.log().InfoContext(ctx, "tool finished", "agent", agent.Name, "tool", tool.Name(), "output_chars", len(output))
	return nil
}
