// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v9"

	"github.com/ryichk/simple-agent-go/config"
)

// Logging holds the log settings read from the environment
type Logging struct {
	// Level accepts slog names such as debug, info, warn, error or info+2
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// NewLogging reads Logging from e
func NewLogging(e config.Environment) (Logging, error) {
	var cfg Logging
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: e.Map()}); err != nil {
		return Logging{}, fmt.Errorf("parse logging config: %w", err)
	}
	return cfg, nil
}

// NewLogger returns a text logger writing to w at the given level
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ApplyLogLevel sets level from LOG_LEVEL in e. An unparsable value is
// reported and leaves level unchanged.
func ApplyLogLevel(e config.Environment, level *slog.LevelVar, log *slog.Logger) {
	cfg, err := NewLogging(e)
	if err != nil {
		log.Warn("ignoring invalid log level", "value", e.Get("LOG_LEVEL"), "error", err)
		return
	}
	level.Set(cfg.Level)
}
