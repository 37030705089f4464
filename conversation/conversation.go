// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

// Package conversation sends a query to an agent and prints the answer.
package conversation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ryichk/simple-agent-go/agent"
)

// Invoker is the part of an agent a conversation needs
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (*agent.Result, error)
}

// RunError reports a failed conversation
type RunError struct {
	Query string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run conversation: %v", e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Run sends query to a and blocks until it answers, then writes the answer
// followed by a newline to w. Nothing is written when the agent fails.
func Run(ctx context.Context, a Invoker, query string, w io.Writer, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log.Info("starting conversation")

	result, err := a.Invoke(ctx, query)
	if err != nil {
		log.Error("failed to get response", "error", err)
		return &RunError{Query: query, Err: err}
	}

	response := result.String()
	log.Info("response received", "response", response)

	if _, err := fmt.Fprintln(w, response); err != nil {
		log.Error("failed to write response", "error", err)
		return &RunError{Query: query, Err: fmt.Errorf("write response: %w", err)}
	}
	return nil
}
