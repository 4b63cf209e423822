package speech

import "fmt"

// defines a function that creates a new synthesizer instance
type SynthesizerFactory func() (Synthesizer, error)

// global registry of available synthesizers
var synthesizers = make(map[string]SynthesizerFactory)

// registers a synthesizer factory with the given name
func RegisterSynthesizer(name string, factory SynthesizerFactory) {
	synthesizers[name] = factory
}

// creates a new synthesizer instance based on the given name
func NewSynthesizer(name string) (Synthesizer, error) {
	factory, exists := synthesizers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported speech provider: %s", name)
	}
	return factory()
}
