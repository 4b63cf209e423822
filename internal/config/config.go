package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config, mostly AI provider and session related
type Config struct {
	Provider       string
	SpeechProvider string
	SessionTTL     time.Duration
	RecencyWindow  int
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:       getEnvOrDefault("AI_PROVIDER", "gemini"),
		SpeechProvider: getEnvOrDefault("SPEECH_PROVIDER", "elevenlabs"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 2*time.Hour),
		RecencyWindow:  getEnvInt("QUESTION_RECENCY_WINDOW", 5),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.SpeechProvider != "elevenlabs" {
		return errors.New("unsupported speech provider: " + config.SpeechProvider + ". Currently supported: elevenlabs")
	}
	if config.RecencyWindow < 1 {
		return errors.New("QUESTION_RECENCY_WINDOW must be at least 1")
	}
	// Provider credential validation is handled by each client's NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
