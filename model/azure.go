// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ryichk/simple-agent-go/config"
)

// azureRoutePrefix marks model ids routed to Azure, as in "azure/gpt-4o-mini"
const azureRoutePrefix = "azure/"

// ErrNoChoices is returned when the API answers without any choice
var ErrNoChoices = errors.New("no response from Azure OpenAI")

// ProviderError reports a provider that could not be constructed
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("create provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AzureProvider sends chat completions to an Azure OpenAI deployment
type AzureProvider struct {
	config ProviderConfig
	client *openai.Client
}

// NewAzureProvider builds a provider bound to cfg. Nothing in cfg is
// validated here; bad credentials or endpoints surface on the first request.
func NewAzureProvider(cfg ProviderConfig) (*AzureProvider, error) {
	p := &AzureProvider{config: cfg}

	clientConfig := openai.DefaultAzureConfig(cfg.APIKey.Reveal(), cfg.APIBase)
	clientConfig.APIVersion = cfg.APIVersion
	clientConfig.AzureModelMapperFunc = p.deployment

	p.client = openai.NewClientWithConfig(clientConfig)
	return p, nil
}

// CreateProvider reads a ProviderConfig from e and builds an AzureProvider
// from it. Failures are logged and returned as *ProviderError.
func CreateProvider(e config.Environment, log *slog.Logger) (*AzureProvider, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("creating model provider", "api_type", APITypeAzure)

	cfg, err := NewProviderConfig(e)
	if err != nil {
		log.Error("failed to create model provider", "error", err)
		return nil, &ProviderError{Err: err}
	}

	p, err := NewAzureProvider(cfg)
	if err != nil {
		log.Error("failed to create model provider", "config", cfg, "error", err)
		return nil, &ProviderError{Err: err}
	}

	log.Debug("model provider created", "config", cfg)
	return p, nil
}

// Config returns the configuration the provider was built from
func (p *AzureProvider) Config() ProviderConfig {
	return p.config
}

// DefaultSettings returns request settings derived from the provider config
func (p *AzureProvider) DefaultSettings() Settings {
	return Settings{
		Model:       p.config.ModelID,
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	}
}

// deployment maps a model id to the Azure deployment serving it.
// An explicit deployment name wins over the model id.
func (p *AzureProvider) deployment(modelID string) string {
	if p.config.DeploymentName != "" {
		return strings.TrimPrefix(p.config.DeploymentName, azureRoutePrefix)
	}
	return strings.TrimPrefix(modelID, azureRoutePrefix)
}

func (p *AzureProvider) CreateChatCompletion(ctx context.Context, messages []Message, settings Settings) (*Response, error) {
	request := p.buildRequest(messages, settings)

	result, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("Azure OpenAI API call failed: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, ErrNoChoices
	}

	choice := result.Choices[0]

	return &Response{
		Message: Message{
			Role:      choice.Message.Role,
			Content:   choice.Message.Content,
			ToolCalls: convertAPIToolCalls(choice.Message.ToolCalls),
		},
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}, nil
}

func (p *AzureProvider) buildRequest(messages []Message, settings Settings) openai.ChatCompletionRequest {
	modelID := settings.Model
	if modelID == "" {
		modelID = p.config.ModelID
	}

	request := openai.ChatCompletionRequest{
		Model:       modelID,
		Messages:    convertToOpenAIMessages(messages),
		Temperature: float32(settings.Temperature),
		MaxTokens:   settings.MaxTokens,
		TopP:        float32(settings.TopP),
		Stop:        settings.StopSequences,
	}

	if len(settings.Tools) > 0 {
		tools := make([]openai.Tool, 0, len(settings.Tools))
		for _, def := range settings.Tools {
			tools = append(tools, toOpenAITool(def))
		}
		request.Tools = tools
		request.ToolChoice = "auto"
	}

	return request
}

func toOpenAITool(def ToolDefinition) openai.Tool {
	params := def.Parameters
	if params == nil {
		params = map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  params,
		},
	}
}

// convertToOpenAIMessages converts messages to OpenAI format
func convertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
		}
		if len(msg.ToolCalls) > 0 {
			result[i].ToolCalls = convertToOpenAIToolCalls(msg.ToolCalls)
		}
	}
	return result
}

func convertToOpenAIToolCalls(toolCalls []ToolCall) []openai.ToolCall {
	result := make([]openai.ToolCall, len(toolCalls))
	for i, tc := range toolCalls {
		result[i] = openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
	}
	return result
}

func convertAPIToolCalls(apiToolCalls []openai.ToolCall) []ToolCall {
	if len(apiToolCalls) == 0 {
		return nil
	}

	result := make([]ToolCall, 0, len(apiToolCalls))
	for _, tc := range apiToolCalls {
		result = append(result, ToolCall{
			ID:   tc.ID,
			Type: "function", // only function tools exist
			Function: FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return result
}
