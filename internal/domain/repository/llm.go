package repository

import (
	"context"
)

// LLMInvoker является единственной границей с внешним LLM-провайдером.
type LLMInvoker interface {
	// Invoke отправляет один текстовый промпт и возвращает текст ответа.
	Invoke(ctx context.Context, prompt string) (string, error)
}
