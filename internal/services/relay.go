package services

import (
	"context"
	"errors"
	"strings"

	"gollmf-backend/internal/models"
)

const errPromptRequired = "Prompt is required"

// RelayService forwards a player's prompt and history to the completion
// provider. It holds no per-request state and is safe for concurrent use.
type RelayService struct {
	provider Provider
	params   GenerationParams
}

func NewRelayService(provider Provider, params GenerationParams) *RelayService {
	return &RelayService{
		provider: provider,
		params:   params,
	}
}

// Chat validates req, calls the provider once and returns the reply. Errors
// are one of *ValidationError, *AuthError, *QuotaExceededError or
// *UpstreamError.
func (s *RelayService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &ValidationError{Message: errPromptRequired}
	}

	completion, err := s.provider.Complete(ctx, buildMessages(req), s.params)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	return &models.ChatResponse{
		Response: completion.Text,
		Usage:    completion.Usage,
	}, nil
}

func classifyProviderError(err error) error {
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		return &UpstreamError{Err: err}
	}

	switch pErr.Kind {
	case ProviderErrorQuota:
		return &QuotaExceededError{Err: err}
	case ProviderErrorAuth:
		return &AuthError{Err: err}
	default:
		return &UpstreamError{Err: err}
	}
}
