package models

import "time"

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry held by the chat client.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the relay, on success and on failure alike.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Exchange is the diagnostic record of one relayed chat call.
type Exchange struct {
	RequestID  string    `json:"request_id"`
	Message    string    `json:"message"`
	Reply      string    `json:"reply"`
	Status     int       `json:"status"`
	Provider   string    `json:"provider"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
