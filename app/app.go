// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

// Package app wires configuration, provider, agent and conversation into the
// single query pipeline run by the example binary.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/ryichk/simple-agent-go/agent"
	"github.com/ryichk/simple-agent-go/config"
	"github.com/ryichk/simple-agent-go/conversation"
	"github.com/ryichk/simple-agent-go/model"
)

// Query is the question the example sends
const Query = "What is the capital of France?"

// Pipeline holds the stages run by Run. Each stage logs its own failure.
type Pipeline struct {
	LoadEnvironment func() error
	Environment     func() config.Environment
	CreateProvider  func(env config.Environment) (model.Provider, error)
	CreateAgent     func(provider model.Provider) (conversation.Invoker, error)

	Query  string
	Stdout io.Writer
	Logger *slog.Logger
}

// Default returns the pipeline backed by the process environment, an optional
// .env file and Azure OpenAI. When level is non-nil it is set from LOG_LEVEL
// once the environment is loaded.
func Default(logger *slog.Logger, level *slog.LevelVar, stdout io.Writer) Pipeline {
	loader := &config.Loader{Logger: logger}
	return Pipeline{
		LoadEnvironment: func() error {
			if err := loader.Load(); err != nil {
				return err
			}
			if level != nil {
				ApplyLogLevel(config.OS(), level, logger)
			}
			return nil
		},
		Environment: config.OS,
		CreateProvider: func(env config.Environment) (model.Provider, error) {
			p, err := model.CreateProvider(env, logger)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		CreateAgent: func(provider model.Provider) (conversation.Invoker, error) {
			a, err := agent.Create(provider, agent.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		Query:  Query,
		Stdout: stdout,
		Logger: logger,
	}
}

// Run executes the stages in order and stops at the first error, which is
// returned unchanged.
func Run(ctx context.Context, p Pipeline) error {
	if err := p.LoadEnvironment(); err != nil {
		return err
	}

	provider, err := p.CreateProvider(p.Environment())
	if err != nil {
		return err
	}

	a, err := p.CreateAgent(provider)
	if err != nil {
		return err
	}

	query := p.Query
	if query == "" {
		query = Query
	}
	return conversation.Run(ctx, a, query, p.Stdout, p.Logger)
}
