package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const insufficientQuota = "insufficient_quota"

type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService builds a chat-completions client. baseURL and httpClient
// are optional; empty/nil keep the library defaults.
func NewOpenAIService(apiKey, baseURL, model string, httpClient *http.Client) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAIService) Name() string { return "openai" }

// Complete sends the system prompt and the user message as a two-turn
// conversation and returns the first choice.
func (s *OpenAIService) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("WARNING: OpenAI returned no choices (id=%s)", resp.ID)
		return "", &ProviderError{Provider: s.Name(), Err: errors.New("no choices returned")}
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.Code == insufficientQuota ||
			apiErr.Type == insufficientQuota {
			return &RateLimitError{Provider: "openai", Err: err}
		}
		return &ProviderError{Provider: "openai", Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &RateLimitError{Provider: "openai", Err: err}
	}

	return &ProviderError{Provider: "openai", Err: fmt.Errorf("chat completion: %w", err)}
}
