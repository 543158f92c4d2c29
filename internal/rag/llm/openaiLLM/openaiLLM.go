package openaiLLM

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/researchkit/researcherAPI/internal/customHttpClient"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag/llm"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

type llmClient struct {
	modelName string
	logger    *logger_i.Logger
}

func NewCompleter(modelName string) llm.Completer {
	return &llmClient{
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_openai"),
	}
}

func (c *llmClient) Complete(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
	if credential == "" {
		return "", &ragErrors.ApiError{Provider: "openai", Err: errors.New("missing API key")}
	}

	client := openai.NewClient(
		option.WithAPIKey(credential),
		option.WithHTTPClient(customHttpClient.PooledClient()),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		c.logger.Error("generation failed", "error", err)
		return "", &ragErrors.ApiError{Provider: "openai", Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &ragErrors.ApiError{Provider: "openai", Err: errors.New("empty completion response")}
	}
	return completion.Choices[0].Message.Content, nil
}
