// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package model

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v9"

	"github.com/ryichk/simple-agent-go/config"
)

const (
	// DefaultAzureModelID is used when AZURE_DEPLOYMENT_NAME is absent
	DefaultAzureModelID = "azure/gpt-4o-mini"

	// DefaultAzureAPIVersion is used when AZURE_API_VERSION is absent
	DefaultAzureAPIVersion = "2025-04-01-preview"

	// APITypeAzure is the only API type this provider speaks
	APITypeAzure = "azure"

	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Secret is a string that never prints its value
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// LogValue keeps secrets out of structured logs
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the raw value
func (s Secret) Reveal() string {
	return string(s)
}

// ProviderConfig holds the settings an Azure provider is built from.
// Tagged fields are read from the environment, the rest are fixed.
type ProviderConfig struct {
	ModelID        string `env:"AZURE_DEPLOYMENT_NAME" envDefault:"azure/gpt-4o-mini"`
	APIBase        string `env:"AZURE_API_BASE"`
	APIKey         Secret `env:"AZURE_API_KEY"`
	DeploymentName string `env:"AZURE_DEPLOYMENT_NAME"`
	APIVersion     string `env:"AZURE_API_VERSION" envDefault:"2025-04-01-preview"`

	Temperature float64
	MaxTokens   int
	APIType     string
}

// NewProviderConfig reads a ProviderConfig from e, applying defaults for the
// model id and API version. Present values are copied as they are.
func NewProviderConfig(e config.Environment) (ProviderConfig, error) {
	cfg := ProviderConfig{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		APIType:     APITypeAzure,
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: e.Map()}); err != nil {
		return ProviderConfig{}, fmt.Errorf("parse provider config: %w", err)
	}
	return cfg, nil
}

// LogValue renders the config for logging with the key redacted
func (c ProviderConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model_id", c.ModelID),
		slog.Float64("temperature", c.Temperature),
		slog.Int("max_tokens", c.MaxTokens),
		slog.String("api_base", c.APIBase),
		slog.String("api_key", c.APIKey.String()),
		slog.String("deployment_name", c.DeploymentName),
		slog.String("api_type", c.APIType),
		slog.String("api_version", c.APIVersion),
	)
}
