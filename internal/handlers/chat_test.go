package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"gollmf-backend/internal/middleware"
	"gollmf-backend/internal/models"
	"gollmf-backend/internal/services"
)

type fakeProvider struct {
	text  string
	usage string
	err   error
	calls int
}

func (f *fakeProvider) Complete(ctx context.Context, messages []models.ChatMessage, params services.GenerationParams) (*services.Completion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &services.Completion{Text: f.text, Usage: json.RawMessage(f.usage)}, nil
}

func newChatHandler(p services.Provider) *ChatHandler {
	return NewChatHandler(services.NewRelayService(p, services.GenerationParams{Model: "gpt-3.5-turbo", MaxTokens: 150, Temperature: 0.7}))
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return payload["error"]
}

func TestChatHandler_Success(t *testing.T) {
	p := &fakeProvider{text: "Barclays Uniclo", usage: `{"prompt_tokens":9,"completion_tokens":3,"total_tokens":12}`}
	rr := postChat(t, newChatHandler(p), `{"prompt":"Uniqlo competitor?","conversationHistory":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}],"targetPhrase":"Barclays Uniclo"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected Content-Type %q", ct)
	}

	var resp struct {
		Response string         `json:"response"`
		Usage    map[string]int `json:"usage"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != "Barclays Uniclo" {
		t.Fatalf("unexpected response %q", resp.Response)
	}
	if resp.Usage["total_tokens"] != 12 {
		t.Fatalf("usage not passed through: %v", resp.Usage)
	}
}

func TestChatHandler_PromptRequired(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing prompt", `{}`},
		{"empty prompt", `{"prompt":""}`},
		{"history only", `{"conversationHistory":[{"role":"user","content":"hi"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{}
			rr := postChat(t, newChatHandler(p), tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if msg := decodeError(t, rr); msg != "Prompt is required" {
				t.Fatalf("unexpected error message %q", msg)
			}
			if p.calls != 0 {
				t.Fatalf("provider should not be called")
			}
		})
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	rr := postChat(t, newChatHandler(&fakeProvider{}), `{"prompt":`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if msg := decodeError(t, rr); msg != msgInvalidBody {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestChatHandler_ProviderErrors(t *testing.T) {
	secret := errors.New("upstream said: org-secret-123 is over its limit")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"quota", &services.ProviderError{Kind: services.ProviderErrorQuota, Err: secret}, http.StatusPaymentRequired, "API quota exceeded. Please check your OpenAI account."},
		{"auth", &services.ProviderError{Kind: services.ProviderErrorAuth, Err: secret}, http.StatusUnauthorized, "Invalid API key. Please check your OpenAI configuration."},
		{"other", &services.ProviderError{Kind: services.ProviderErrorOther, Err: secret}, http.StatusInternalServerError, "Failed to get response from AI. Please try again."},
		{"timeout", context.DeadlineExceeded, http.StatusInternalServerError, "Failed to get response from AI. Please try again."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postChat(t, newChatHandler(&fakeProvider{err: tc.err}), `{"prompt":"hello"}`)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			body := rr.Body.String()
			if strings.Contains(body, "org-secret-123") || strings.Contains(body, "deadline") {
				t.Fatalf("provider detail leaked to caller: %s", body)
			}
			if msg := decodeError(t, rr); msg != tc.wantMsg {
				t.Fatalf("unexpected error message %q", msg)
			}
		})
	}
}

func TestChatHandler_LogsProviderErrorWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	p := &fakeProvider{err: &services.ProviderError{Kind: services.ProviderErrorOther, Err: errors.New("connection reset")}}
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"prompt":"hello"}`))
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-42"))
	rr := httptest.NewRecorder()

	newChatHandler(p).Chat(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	logged := buf.String()
	if !strings.Contains(logged, "request_id=req-42") || !strings.Contains(logged, "connection reset") {
		t.Fatalf("expected request ID and provider detail in log, got %q", logged)
	}
}
