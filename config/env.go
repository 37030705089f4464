// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

// Package config loads process configuration from the environment and
// optional dotenv files, and exposes it as an explicit Environment value.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded by Load when no paths are given.
const DefaultEnvFile = ".env"

// LoadError reports a dotenv file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load environment from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader populates the process environment from dotenv files.
type Loader struct {
	Logger *slog.Logger
}

// Load is shorthand for a Loader using the default logger.
func Load(paths ...string) error {
	return (&Loader{}).Load(paths...)
}

// Load reads the given dotenv files into the process environment.
// Variables already set in the process are never overridden.
//
// With no paths, DefaultEnvFile is read if it exists; its absence is not an
// error. Paths given explicitly must exist.
func (l *Loader) Load(paths ...string) error {
	log := l.logger()
	log.Info("loading environment variables")

	optional := len(paths) == 0
	if optional {
		paths = []string{DefaultEnvFile}
	}

	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil {
			continue
		}
		if optional && errors.Is(err, os.ErrNotExist) {
			log.Debug("no dotenv file found", "path", path)
			continue
		}

		loadErr := &LoadError{Path: path, Err: err}
		log.Error("failed to load environment variables", "path", path, "error", err)
		return loadErr
	}

	return nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Environment is an immutable view of configuration variables.
// Empty values are dropped, so a variable set to "" reads as absent.
type Environment struct {
	vars map[string]string
}

// OS snapshots the current process environment.
func OS() Environment {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[key] = value
	}
	return FromMap(vars)
}

// FromMap builds an Environment from the given variables. The map is copied.
func FromMap(vars map[string]string) Environment {
	env := Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		if v == "" {
			continue
		}
		env.vars[k] = v
	}
	return env
}

// Lookup returns the value of key and whether it is present.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value of key, or "" when absent.
func (e Environment) Get(key string) string {
	return e.vars[key]
}

// Map returns a copy of the variables.
func (e Environment) Map() map[string]string {
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
