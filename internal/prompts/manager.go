package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is the seam handlers and services depend on, so tests
// can swap in canned prompts.
type PromptProvider interface {
	BuildPrompt(mode string, data map[string]string) (string, error)
	GetTemplates() map[string]string
}

type PromptManager struct {
	prompts map[string]string // mode -> complete prompt text
}

// loaded prompt template
type PromptTemplate struct {
	Prompt string `yaml:"prompt"`
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// BuildPrompt fills the template for the given mode with the supplied
// values. Placeholders look like {{.Key}}.
func (pm *PromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	promptTemplate, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	// Simple string replacement instead of complex template execution
	result := promptTemplate
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}

	return result, nil
}

// GetTemplates exposes the loaded templates for readiness checks.
func (pm *PromptManager) GetTemplates() map[string]string {
	out := make(map[string]string, len(pm.prompts))
	for mode, prompt := range pm.prompts {
		out[mode] = prompt
	}
	return out
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(promptTemplate.Prompt) == "" {
			return fmt.Errorf("template file %s has an empty prompt", entry.Name())
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = promptTemplate.Prompt
	}

	return nil
}
