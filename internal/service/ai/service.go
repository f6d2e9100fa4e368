package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"healthchat/internal/config"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Service wraps a tool-calling chat model behind a single completion
// contract: one transcript in, one assistant message out. It performs no
// retries; a transport failure is the caller's to absorb.
type Service struct {
	model   model.ToolCallingChatModel
	modelID string
	stream  bool
}

// APIKeyEnv returns the environment variable the provider's credential is
// read from.
func APIKeyEnv(provider string) string {
	switch provider {
	case "claude":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// NewService builds the chat model for the selected provider and binds the
// tool registry to it once. modelType overrides the provider's configured
// default when non-empty.
func NewService(ctx context.Context, provider, modelType, apiKey string, provCfg config.ProviderConfig, specs []*schema.ToolInfo, stream bool) (*Service, error) {
	if modelType == "" {
		modelType = provCfg.Model
	}

	var (
		chatModel model.ToolCallingChatModel
		err       error
	)
	switch provider {
	case "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   modelType,
			APIKey:  apiKey,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    apiKey,
			Model:     modelType,
			BaseURL:   baseURLPtr,
			MaxTokens: 3000,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  modelType,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}

	if len(specs) > 0 {
		chatModel, err = chatModel.WithTools(specs)
		if err != nil {
			return nil, fmt.Errorf("bind tools: %w", err)
		}
	}

	return &Service{model: chatModel, modelID: modelType, stream: stream}, nil
}

// Model returns the resolved model name.
func (s *Service) Model() string { return s.modelID }

// Complete runs one completion over the transcript. The reply carries either
// plain content or the ordered tool calls to execute. In streaming mode the
// fragments are merged before the reply is returned, so callers never see a
// partial tool call.
func (s *Service) Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	if !s.stream {
		reply, err := s.model.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("generate completion: %w", err)
		}
		return reply, nil
	}

	reader, err := s.model.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("open completion stream: %w", err)
	}
	defer reader.Close()

	var content strings.Builder
	rec := NewReconstructor()
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read completion stream: %w", err)
		}
		if chunk.Content != "" {
			content.WriteString(chunk.Content)
		}
		for _, tc := range chunk.ToolCalls {
			rec.Add(tc)
		}
	}
	return schema.AssistantMessage(content.String(), rec.Finalize()), nil
}
