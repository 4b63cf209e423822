package elevenlabs

import (
	"errors"
	"os"
)

// holds ElevenLabs-specific configuration
type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, errors.New("ELEVENLABS_API_KEY environment variable is required")
	}

	voiceID := os.Getenv("ELEVENLABS_VOICE_ID")
	if voiceID == "" {
		voiceID = "21m00Tcm4TlvDq8ikWAM" // Rachel
	}

	modelID := os.Getenv("ELEVENLABS_MODEL_ID")
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}

	baseURL := os.Getenv("ELEVENLABS_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Config{
		APIKey:  apiKey,
		VoiceID: voiceID,
		ModelID: modelID,
		BaseURL: baseURL,
	}, nil
}
