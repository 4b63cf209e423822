package elevenlabs

import "vode/interview/internal/speech"

// Register ElevenLabs synthesizer on package import
func init() {
	speech.RegisterSynthesizer("elevenlabs", func() (speech.Synthesizer, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config), nil
	})
}
