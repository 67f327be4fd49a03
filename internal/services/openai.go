package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"gollmf-backend/internal/models"
)

const (
	codeInsufficientQuota = "insufficient_quota"
	codeInvalidAPIKey     = "invalid_api_key"
)

var errMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")

type OpenAIProvider struct {
	client *openai.Client
	hasKey bool
}

// NewOpenAIProvider builds a provider for the Chat Completions API. An empty
// apiKey is allowed; every call will then fail as an auth error.
func NewOpenAIProvider(apiKey, baseURL string, timeout time.Duration) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: &usageTransport{base: http.DefaultTransport},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		hasKey: apiKey != "",
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, messages []models.ChatMessage, params GenerationParams) (*Completion, error) {
	if !p.hasKey {
		return nil, &ProviderError{Kind: ProviderErrorAuth, Err: errMissingAPIKey}
	}

	// The SDK omits a zero temperature, which the API reads as its default of 1.
	temperature := params.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		MaxTokens:   params.MaxTokens,
		Temperature: temperature,
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	slot := &usageSlot{}
	resp, err := p.client.CreateChatCompletion(context.WithValue(ctx, usageSlotKey{}, slot), req)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Kind: ProviderErrorOther, Err: fmt.Errorf("no choices in response")}
	}

	return &Completion{
		Text:  resp.Choices[0].Message.Content,
		Usage: slot.usage(),
	}, nil
}

type usageSlotKey struct{}

// usageSlot receives the response's usage object exactly as the provider sent it.
type usageSlot struct {
	raw json.RawMessage
}

func (s *usageSlot) usage() json.RawMessage {
	if len(s.raw) == 0 || bytes.Equal(s.raw, []byte("null")) {
		return nil
	}
	return s.raw
}

// usageTransport copies the raw usage object out of successful responses for
// requests that carry a usageSlot. The SDK's Usage type drops unknown fields.
type usageTransport struct {
	base http.RoundTripper
}

func (t *usageTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	slot, ok := req.Context().Value(usageSlotKey{}).(*usageSlot)
	if !ok || resp.StatusCode >= http.StatusBadRequest {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading completion body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var envelope struct {
		Usage json.RawMessage `json:"usage"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		slot.raw = envelope.Usage
	}
	return resp, nil
}

func classifyOpenAIError(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code, _ := apiErr.Code.(string)
		switch {
		case code == codeInsufficientQuota || apiErr.Type == codeInsufficientQuota:
			return &ProviderError{Kind: ProviderErrorQuota, Err: err}
		case code == codeInvalidAPIKey || apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return &ProviderError{Kind: ProviderErrorAuth, Err: err}
		}
		return &ProviderError{Kind: ProviderErrorOther, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return &ProviderError{Kind: ProviderErrorAuth, Err: err}
	}

	return &ProviderError{Kind: ProviderErrorOther, Err: err}
}
