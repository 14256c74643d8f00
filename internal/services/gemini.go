package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type GeminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(apiKey, modelName string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Name() string { return "gemini" }

// Complete runs a single-turn generation with systemPrompt as the model's
// system instruction.
func (s *GeminiService) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	// A fresh model handle per call; GenerativeModel is not safe to mutate concurrently.
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	reply, ok := firstCandidateText(resp)
	if !ok {
		return "", &ProviderError{Provider: s.Name(), Err: errors.New("no candidates returned")}
	}
	return reply, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), true
}

func classifyGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return &RateLimitError{Provider: "gemini", Err: err}
	}
	if status.Code(err) == codes.ResourceExhausted {
		return &RateLimitError{Provider: "gemini", Err: err}
	}
	return &ProviderError{Provider: "gemini", Err: err}
}
