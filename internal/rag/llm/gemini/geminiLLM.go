package gemini

import (
	"context"
	"errors"
	"sync"

	"google.golang.org/genai"

	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag/llm"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

type llmClient struct {
	modelName string
	logger    *logger_i.Logger

	mu      sync.Mutex
	clients map[string]*genai.Client //keyed by credential
}

func NewCompleter(modelName string) llm.Completer {
	return &llmClient{
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_gemini"),
		clients:   make(map[string]*genai.Client),
	}
}

func (c *llmClient) Complete(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
	if credential == "" {
		return "", &ragErrors.ApiError{Provider: "gemini", Err: errors.New("missing API key")}
	}

	client, err := c.clientFor(ctx, credential)
	if err != nil {
		return "", &ragErrors.ApiError{Provider: "gemini", Err: err}
	}

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	result, err := c.genContent(ctx, client, userPrompt, contentConfig)
	if err != nil {
		c.logger.Error("generation failed", "error", err)
		return "", &ragErrors.ApiError{Provider: "gemini", Err: err}
	}
	return result, nil
}

func (c *llmClient) genContent(ctx context.Context, client *genai.Client, userPrompt string, cfg *genai.GenerateContentConfig) (string, error) {
	result, err := client.Models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", errors.New("empty completion response")
	}
	return result.Text(), nil
}

// clientFor caches one genai client per credential so repeated calls by
// the same caller reuse connections.
func (c *llmClient) clientFor(ctx context.Context, credential string) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[credential]; ok {
		return client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: credential})
	if err != nil {
		return nil, err
	}
	c.clients[credential] = client
	return client, nil
}
