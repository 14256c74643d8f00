package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"botnest/internal/models"
	"botnest/internal/services"
)

const genericFailureReply = "Oops! Something went wrong with AI model."

type exchangeRecorder interface {
	Record(ctx context.Context, ex models.Exchange)
}

type ChatHandler struct {
	completer services.Completer
	exchanges exchangeRecorder
}

func NewChatHandler(completer services.Completer, exchanges exchangeRecorder) *ChatHandler {
	return &ChatHandler{
		completer: completer,
		exchanges: exchanges,
	}
}

// Chat relays one message to the completion provider. The message is passed
// through as-is, empty or not.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := r.Header.Get("X-Request-ID")

	message, err := decodeMessage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{Reply: "Invalid request body"})
		return
	}

	log.Printf("[%s] Received message: %s", requestID, message)

	ex := models.Exchange{
		RequestID: requestID,
		Message:   message,
		Provider:  h.completer.Name(),
		CreatedAt: start.UTC(),
	}

	reply, err := h.completer.Complete(r.Context(), services.SystemPrompt, message)
	status := http.StatusOK
	if err != nil {
		status, reply = failureReply(err, message)
		ex.Error = err.Error()
	}

	ex.Status = status
	ex.Reply = reply
	ex.DurationMS = time.Since(start).Milliseconds()
	if h.exchanges != nil {
		h.exchanges.Record(r.Context(), ex)
	}

	writeJSON(w, status, models.ChatResponse{Reply: reply})
}

var errInvalidBody = errors.New("invalid request body")

// decodeMessage extracts the message field without validating it. Bodies that
// are not sent as JSON, JSON values that are not objects, and missing or null
// fields all read as an empty message. A non-string message is passed on as
// its JSON text. Only syntactically broken JSON is rejected.
func decodeMessage(r *http.Request) (string, error) {
	if !isJSONContent(r.Header.Get("Content-Type")) {
		return "", nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errInvalidBody
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}
	if !json.Valid(data) {
		return "", errInvalidBody
	}

	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", nil
	}
	return messageText(body.Message), nil
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isJSONContent(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// failureReply maps a provider error to the status and reply the client sees.
func failureReply(err error, message string) (int, string) {
	var rateErr *services.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests, quotaFallbackReply(message)
	}
	return http.StatusInternalServerError, genericFailureReply
}

func quotaFallbackReply(message string) string {
	return fmt.Sprintf("You said: \"%s\". But the real chatbot is currently unavailable due to quota limits.", message)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
