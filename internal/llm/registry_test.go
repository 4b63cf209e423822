package llm

import (
	"context"
	"testing"

	"vode/interview/internal/conversation"
)

type stubProvider struct{}

func (s *stubProvider) GenerateChat(ctx context.Context, turns []conversation.Turn) (string, error) {
	return "", nil
}

func (s *stubProvider) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (s *stubProvider) GetProviderName() string { return "stub" }

func TestNewProviderUnknownName(t *testing.T) {
	if _, err := NewProvider("does-not-exist"); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}

func TestRegisterAndCreateProvider(t *testing.T) {
	RegisterProvider("stub", func() (Provider, error) {
		return &stubProvider{}, nil
	})

	provider, err := NewProvider("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.GetProviderName() != "stub" {
		t.Errorf("unexpected provider: %q", provider.GetProviderName())
	}
}

func TestProviderErrorFormatting(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Code: ErrCodeServiceDown, Message: "down"}
	if err.Error() != "gemini error: down" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	wrapped := &ProviderError{Provider: "gemini", Message: "down", Err: context.DeadlineExceeded}
	if wrapped.Error() != "gemini error: down (context deadline exceeded)" {
		t.Errorf("unexpected message: %q", wrapped.Error())
	}
}
