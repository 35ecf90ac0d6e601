package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	murfBaseURL = "https://api.murf.ai"

	// DefaultVoice is used when no voice is specified.
	DefaultVoice = "en-UK-peter"
	// DefaultStyle is used when no speaking style is specified.
	DefaultStyle = "Conversational"
)

// MurfProvider implements the TTS Provider interface using Murf's speech
// generation API. Murf caps input at 3000 characters per request; longer text
// must be chunked by the caller.
type MurfProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewMurf creates a new Murf TTS provider.
func NewMurf(apiKey string) *MurfProvider {
	return &MurfProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    murfBaseURL,
		httpClient: &http.Client{},
	}
}

// NewMurfWithClient creates a new Murf TTS provider with a custom HTTP client.
func NewMurfWithClient(apiKey string, client *http.Client) *MurfProvider {
	if client == nil {
		client = &http.Client{}
	}
	p := NewMurf(apiKey)
	p.httpClient = client
	return p
}

// WithBaseURL overrides the API endpoint (used in tests).
func (m *MurfProvider) WithBaseURL(base string) *MurfProvider {
	base = strings.TrimSpace(base)
	if base != "" {
		m.baseURL = strings.TrimRight(base, "/")
	}
	return m
}

// Name returns the provider identifier.
func (m *MurfProvider) Name() string {
	return "murf"
}

// Synthesize converts text to audio hosted by Murf.
func (m *MurfProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	voice := opts.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}

	payload, err := json.Marshal(murfGenerateRequest{
		Text:    text,
		VoiceID: voice,
		Style:   style,
		Format:  opts.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/speech/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("murf request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("murf error %d: %s", resp.StatusCode, string(body))
	}

	var out murfGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if out.AudioFile == "" {
		return nil, fmt.Errorf("murf: response missing audio file")
	}

	return &Synthesis{
		AudioURL:       out.AudioFile,
		LengthSeconds:  out.AudioLengthInSeconds,
		RemainingChars: out.RemainingCharacterCount,
	}, nil
}

type murfGenerateRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
	Style   string `json:"style,omitempty"`
	Format  string `json:"format,omitempty"`
}

type murfGenerateResponse struct {
	AudioFile               string  `json:"audioFile"`
	AudioLengthInSeconds    float64 `json:"audioLengthInSeconds"`
	RemainingCharacterCount int     `json:"remainingCharacterCount"`
}
