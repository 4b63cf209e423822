package llm

import (
	"context"

	"vode/interview/internal/conversation"
)

// defines the interface for reasoning-engine providers
type Provider interface {
	// GenerateChat produces the next model reply for an ordered
	// transcript. Providers must preserve turn order and roles; they hold
	// no conversation state of their own.
	GenerateChat(ctx context.Context, turns []conversation.Turn) (string, error)
	// GenerateOnce answers a single standalone prompt.
	GenerateOnce(ctx context.Context, prompt string) (string, error)
	GetProviderName() string
}

// represents an error from a reasoning-engine provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
