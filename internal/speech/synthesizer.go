package speech

import "context"

// Voice describes one available synthesis voice.
type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// defines the interface for text-to-speech providers
type Synthesizer interface {
	// Synthesize converts text to audio bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)
	// Voices lists the voices the provider can speak with.
	Voices(ctx context.Context) ([]Voice, error)
	GetProviderName() string
}

// represents an error from a speech provider
type SynthesisError struct {
	Provider string
	Message  string
	Err      error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}
