package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vode/interview/internal/speech"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1"

// Client calls the ElevenLabs REST API. Synthesis is a blocking network
// call with a 30 second ceiling; failures surface as SynthesisError and
// are never retried here.
type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to audio bytes using the configured voice.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := synthesisRequest{
		Text:    text,
		ModelID: c.config.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Failed to encode synthesis request",
			Err:      err,
		}
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s", c.config.BaseURL, c.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Failed to build synthesis request",
			Err:      err,
		}
	}
	req.Header.Set("xi-api-key", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Synthesis request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  fmt.Sprintf("Synthesis returned status %d", resp.StatusCode),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Failed to read audio response",
			Err:      err,
		}
	}
	return audio, nil
}

type voicesResponse struct {
	Voices []speech.Voice `json:"voices"`
}

// Voices lists the available synthesis voices.
func (c *Client) Voices(ctx context.Context) ([]speech.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/voices", nil)
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Failed to build voices request",
			Err:      err,
		}
	}
	req.Header.Set("xi-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Voices request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  fmt.Sprintf("Voices returned status %d", resp.StatusCode),
		}
	}

	var parsed voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &speech.SynthesisError{
			Provider: "elevenlabs",
			Message:  "Failed to decode voices response",
			Err:      err,
		}
	}
	return parsed.Voices, nil
}

func (c *Client) GetProviderName() string {
	return "elevenlabs"
}
