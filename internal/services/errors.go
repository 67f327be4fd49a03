package services

import "fmt"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// AuthError means the provider rejected or never received a credential.
type AuthError struct{ Err error }

func (e *AuthError) Error() string { return fmt.Sprintf("provider auth error: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// QuotaExceededError means the provider account has run out of quota.
type QuotaExceededError struct{ Err error }

func (e *QuotaExceededError) Error() string { return fmt.Sprintf("provider quota exceeded: %v", e.Err) }
func (e *QuotaExceededError) Unwrap() error { return e.Err }

// UpstreamError covers every other provider or network failure.
type UpstreamError struct{ Err error }

func (e *UpstreamError) Error() string { return fmt.Sprintf("provider request failed: %v", e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }
