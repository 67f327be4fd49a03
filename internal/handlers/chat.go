package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gollmf-backend/internal/models"
)

type chatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	relay chatService
}

func NewChatHandler(relay chatService) *ChatHandler {
	return &ChatHandler{relay: relay}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	// An empty body decodes as an empty request and fails prompt validation.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidBody))
		return
	}

	resp, err := h.relay.Chat(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
