package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"botnest/internal/models"
)

// StatusError is a non-2xx answer from the relay. Reply holds the decoded
// body text when the relay sent one.
type StatusError struct {
	StatusCode int
	Reply      string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned status %d", e.StatusCode)
}

// RelayClient calls the relay's chat endpoint.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRelayClient(baseURL string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RelayClient{baseURL: baseURL, httpClient: httpClient}
}

// Chat posts message to {baseURL}/chat and returns the reply.
func (c *RelayClient) Chat(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var out models.ChatResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Reply: out.Reply}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	return out.Reply, nil
}
