package services

import (
	"context"
	"fmt"
)

// SystemPrompt is sent ahead of every user message.
const SystemPrompt = "You are a helpful assistant like ChatGPT."

// Completer turns one user message into one model reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
	Name() string
}

// RateLimitError reports that the provider refused the call for quota or
// rate-limit reasons.
type RateLimitError struct {
	Provider string
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// ProviderError is any other provider failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
