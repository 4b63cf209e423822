package gemini

import (
	"context"

	"google.golang.org/genai"

	"vode/interview/internal/conversation"
	"vode/interview/internal/llm"
)

// Client is a stateless Gemini wrapper. Conversation history is owned by
// the caller and passed in full on every call.
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// GenerateChat sends the full ordered transcript and returns the next
// model turn.
func (c *Client) GenerateChat(ctx context.Context, turns []conversation.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, contents, nil)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate chat response",
			Err:      err,
		}
	}

	return extractText(result)
}

// GenerateOnce answers a single standalone prompt with no history.
func (c *Client) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate response",
			Err:      err,
		}
	}

	return extractText(result)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}
	return text, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
