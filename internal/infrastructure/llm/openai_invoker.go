package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"interpreter/internal/domain/repository"
	"interpreter/internal/infrastructure/metrics"
)

type OpenAIInvoker struct {
	client *openai.Client
	model  string
}

// NewOpenAIInvoker builds the provider boundary. An empty baseURL
// keeps the library default endpoint.
func NewOpenAIInvoker(apiKey, baseURL, model string, timeout time.Duration) repository.LLMInvoker {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIInvoker{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMRequest(g.model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		metrics.IncError("llm", "create_completion")
		return "", fmt.Errorf("failed to make OpenAI request: %w", err)
	}

	if len(resp.Choices) == 0 {
		metrics.IncError("llm", "empty_choices")
		return "", fmt.Errorf("invalid response format: no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
