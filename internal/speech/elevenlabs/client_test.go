package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vode/interview/internal/speech"
)

func testClient(baseURL string) *Client {
	return NewClient(&Config{
		APIKey:  "test-key",
		VoiceID: "21m00Tcm4TlvDq8ikWAM",
		ModelID: "eleven_multilingual_v2",
		BaseURL: baseURL,
	})
}

func TestSynthesizeSendsExpectedRequest(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody synthesisRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	audio, err := client.Synthesize(context.Background(), "Hello candidate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(audio) != "mp3-bytes" {
		t.Errorf("unexpected audio: %q", audio)
	}
	if gotPath != "/text-to-speech/21m00Tcm4TlvDq8ikWAM" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("unexpected api key header: %q", gotAPIKey)
	}
	if gotBody.Text != "Hello candidate" {
		t.Errorf("unexpected text: %q", gotBody.Text)
	}
	if gotBody.ModelID != "eleven_multilingual_v2" {
		t.Errorf("unexpected model: %q", gotBody.ModelID)
	}
	if gotBody.VoiceSettings.Stability != 0.5 || gotBody.VoiceSettings.SimilarityBoost != 0.75 {
		t.Errorf("unexpected voice settings: %+v", gotBody.VoiceSettings)
	}
}

func TestSynthesizeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Synthesize(context.Background(), "text")
	var synthErr *speech.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
	if synthErr.Provider != "elevenlabs" {
		t.Errorf("unexpected provider: %q", synthErr.Provider)
	}
}

func TestSynthesizeConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).Synthesize(context.Background(), "text")
	var synthErr *speech.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
}

func TestVoicesParsesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"voices": []map[string]string{
				{"voice_id": "21m00Tcm4TlvDq8ikWAM", "name": "Rachel"},
				{"voice_id": "abc123", "name": "Atlas"},
			},
		})
	}))
	defer server.Close()

	voices, err := testClient(server.URL).Voices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(voices))
	}
	if voices[0].Name != "Rachel" || voices[1].VoiceID != "abc123" {
		t.Errorf("unexpected voices: %+v", voices)
	}
}

func TestVoicesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Voices(context.Background()); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestNewConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Errorf("expected error without API key")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "key")
	t.Setenv("ELEVENLABS_VOICE_ID", "")
	t.Setenv("ELEVENLABS_MODEL_ID", "")
	t.Setenv("ELEVENLABS_BASE_URL", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.VoiceID != "21m00Tcm4TlvDq8ikWAM" {
		t.Errorf("unexpected default voice: %q", cfg.VoiceID)
	}
	if cfg.ModelID != "eleven_multilingual_v2" {
		t.Errorf("unexpected default model: %q", cfg.ModelID)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Errorf("unexpected default base URL: %q", cfg.BaseURL)
	}
}
