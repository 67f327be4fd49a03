package models

import "encoding/json"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Prompt              string        `json:"prompt"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
	TargetPhrase        string        `json:"targetPhrase"`
}

// ChatResponse is the generated reply plus the provider's token usage,
// passed through as received.
type ChatResponse struct {
	Response string          `json:"response"`
	Usage    json.RawMessage `json:"usage,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	HasOpenAIKey bool   `json:"hasOpenAIKey"`
}
