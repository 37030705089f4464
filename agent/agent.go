// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

// Package agent runs a model in a loop, executing the tools it asks for until
// it produces a final answer.
package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/ryichk/simple-agent-go/model"
	"github.com/ryichk/simple-agent-go/tool"
)

// DefaultMaxTurns bounds the model calls made by one invocation
const DefaultMaxTurns = 10

const defaultName = "agent"

var (
	ErrProviderRequired = errors.New("model provider is required")
	ErrMaxTurnsExceeded = errors.New("maximum turns exceeded")
	ErrEmptyResponse    = errors.New("model returned an empty response")
)

// AgentError reports an agent that could not be constructed
type AgentError struct {
	Err error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("create agent: %v", e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

// settingsProvider is implemented by providers that know their own defaults
type settingsProvider interface {
	DefaultSettings() model.Settings
}

// Agent binds a model provider to a system prompt and a set of tools.
// It keeps the conversation history between invocations.
type Agent struct {
	// Name identifies the agent in logs and traces
	Name string

	// SystemPrompt is sent as the system message, omitted when empty
	SystemPrompt string

	Provider model.Provider
	Settings model.Settings
	Tools    []tool.Tool

	// MaxTurns bounds model calls per invocation, DefaultMaxTurns when zero
	MaxTurns int

	Hooks Hooks

	logger *slog.Logger

	invokeMu sync.Mutex

	mu      sync.Mutex
	history []model.Message
}

// Create wraps provider in an agent. Settings default to the provider's own
// when it exposes them. Failures are logged and returned as *AgentError.
func Create(provider model.Provider, opts ...Option) (*Agent, error) {
	if isNil(provider) {
		provider = nil
	}
	a := &Agent{
		Name:     defaultName,
		Provider: provider,
		MaxTurns: DefaultMaxTurns,
	}
	if sp, ok := provider.(settingsProvider); ok {
		a.Settings = sp.DefaultSettings()
	}
	for _, opt := range opts {
		opt(a)
	}

	log := a.log()
	log.Info("creating agent", "agent", a.Name, "tools", len(a.Tools))

	if err := a.validate(); err != nil {
		log.Error("failed to create agent", "agent", a.Name, "error", err)
		return nil, &AgentError{Err: err}
	}

	if a.Hooks == nil {
		a.Hooks = &LoggingHooks{Logger: log}
	}
	return a, nil
}

// isNil reports whether p is nil or wraps a nil pointer
func isNil(p model.Provider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (a *Agent) validate() error {
	if a.Provider == nil {
		return ErrProviderRequired
	}
	if a.MaxTurns < 0 {
		return fmt.Errorf("max turns must not be negative, got %d", a.MaxTurns)
	}
	seen := make(map[string]bool, len(a.Tools))
	for _, t := range a.Tools {
		if t == nil {
			return errors.New("nil tool")
		}
		if seen[t.Name()] {
			return fmt.Errorf("duplicate tool name %q", t.Name())
		}
		seen[t.Name()] = true
	}
	return nil
}

func (a *Agent) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// Messages returns a copy of the conversation history, system prompt excluded
func (a *Agent) Messages() []model.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Message(nil), a.history...)
}

// ResetHistory forgets previous invocations
func (a *Agent) ResetHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

// Result is the outcome of one invocation
type Result struct {
	// Output is the final assistant text
	Output string

	// StopReason is the finish reason reported with the final message
	StopReason string

	// Messages are the messages added by this invocation, prompt included
	Messages []model.Message

	Usage model.Usage

	// Turns is the number of model calls made
	Turns int
}

func (r *Result) String() string {
	if r == nil {
		return ""
	}
	return r.Output
}
