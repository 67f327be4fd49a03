package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gollmf-backend/internal/models"
)

// GenerationParams are the fixed knobs sent with every completion call.
type GenerationParams struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// Completion is the provider's answer: the first choice's text and the
// usage block exactly as the provider reported it.
type Completion struct {
	Text  string
	Usage json.RawMessage
}

// Provider is an external completion service.
type Provider interface {
	Complete(ctx context.Context, messages []models.ChatMessage, params GenerationParams) (*Completion, error)
}

type ProviderErrorKind int

const (
	ProviderErrorOther ProviderErrorKind = iota
	ProviderErrorQuota
	ProviderErrorAuth
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderErrorQuota:
		return "quota"
	case ProviderErrorAuth:
		return "auth"
	default:
		return "other"
	}
}

// ProviderError is how a Provider reports a classified failure.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
