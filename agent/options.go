// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package agent

import (
	"log/slog"

	"github.com/ryichk/simple-agent-go/model"
	"github.com/ryichk/simple-agent-go/tool"
)

// Option configures an Agent at construction or when cloning
type Option func(*Agent)

func WithName(name string) Option {
	return func(a *Agent) {
		a.Name = name
	}
}

// WithSystemPrompt sets the system message sent before the conversation
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.SystemPrompt = prompt
	}
}

// WithSettings replaces the generation settings. Tools are always taken from
// the agent, so Settings.Tools is ignored.
func WithSettings(settings model.Settings) Option {
	return func(a *Agent) {
		a.Settings = settings
	}
}

func WithTools(tools ...tool.Tool) Option {
	return func(a *Agent) {
		a.Tools = append([]tool.Tool(nil), tools...)
	}
}

func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		a.MaxTurns = n
	}
}

func WithHooks(hooks Hooks) Option {
	return func(a *Agent) {
		a.Hooks = hooks
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// Clone returns a copy of the agent with the options applied.
// The copy starts with an empty conversation history.
func (a *Agent) Clone(opts ...Option) *Agent {
	c := &Agent{
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		Provider:     a.Provider,
		Settings:     a.Settings,
		Tools:        append([]tool.Tool(nil), a.Tools...),
		MaxTurns:     a.MaxTurns,
		Hooks:        a.Hooks,
		logger:       a.logger,
	}
	c.Settings.StopSequences = append([]string(nil), a.Settings.StopSequences...)
	for _, opt := range opts {
		opt(c)
	}
	return c
}
