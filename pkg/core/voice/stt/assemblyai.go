package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	assemblyAIBaseURL          = "https://api.assemblyai.com"
	assemblyAIDefaultPollEvery = time.Second
)

// AssemblyAIProvider implements the STT Provider interface using AssemblyAI's
// async transcription API: upload the audio, create a transcript job, then
// poll until the job completes.
type AssemblyAIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	pollEvery  time.Duration
}

// NewAssemblyAI creates a new AssemblyAI STT provider.
func NewAssemblyAI(apiKey string) *AssemblyAIProvider {
	return &AssemblyAIProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    assemblyAIBaseURL,
		httpClient: &http.Client{},
		pollEvery:  assemblyAIDefaultPollEvery,
	}
}

// NewAssemblyAIWithClient creates a new AssemblyAI STT provider with a custom
// HTTP client.
func NewAssemblyAIWithClient(apiKey string, client *http.Client) *AssemblyAIProvider {
	if client == nil {
		client = &http.Client{}
	}
	p := NewAssemblyAI(apiKey)
	p.httpClient = client
	return p
}

// WithBaseURL overrides the API endpoint (used in tests).
func (a *AssemblyAIProvider) WithBaseURL(base string) *AssemblyAIProvider {
	base = strings.TrimSpace(base)
	if base != "" {
		a.baseURL = strings.TrimRight(base, "/")
	}
	return a
}

// WithPollInterval overrides how often transcript status is polled.
func (a *AssemblyAIProvider) WithPollInterval(d time.Duration) *AssemblyAIProvider {
	if d > 0 {
		a.pollEvery = d
	}
	return a
}

// Name returns the provider identifier.
func (a *AssemblyAIProvider) Name() string {
	return "assemblyai"
}

// Transcribe converts audio to text.
func (a *AssemblyAIProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	uploadURL, err := a.upload(ctx, audio)
	if err != nil {
		return nil, err
	}

	id, err := a.createTranscript(ctx, uploadURL, opts)
	if err != nil {
		return nil, err
	}

	for {
		tr, err := a.getTranscript(ctx, id)
		if err != nil {
			return nil, err
		}
		switch tr.Status {
		case "completed":
			return tr.toTranscript(), nil
		case "error":
			return nil, fmt.Errorf("assemblyai transcript %s: %s", id, tr.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollEvery):
		}
	}
}

func (a *AssemblyAIProvider) upload(ctx context.Context, audio io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v2/upload", audio)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", a.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("assemblyai upload error %d: %s", resp.StatusCode, string(body))
	}

	var out aaiUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("parse upload response: %w", err)
	}
	if out.UploadURL == "" {
		return "", fmt.Errorf("assemblyai upload: response missing upload_url")
	}
	return out.UploadURL, nil
}

func (a *AssemblyAIProvider) createTranscript(ctx context.Context, audioURL string, opts TranscribeOptions) (string, error) {
	body := aaiTranscriptRequest{AudioURL: audioURL}
	if opts.Language != "" {
		body.LanguageCode = opts.Language
	}
	if opts.Model != "" {
		body.SpeechModel = opts.Model
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v2/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create transcript request: %w", err)
	}
	req.Header.Set("Authorization", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("assemblyai transcript error %d: %s", resp.StatusCode, string(body))
	}

	var out aaiTranscriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("parse transcript response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("assemblyai transcript: response missing id")
	}
	return out.ID, nil
}

func (a *AssemblyAIProvider) getTranscript(ctx context.Context, id string) (*aaiTranscriptResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("create poll request: %w", err)
	}
	req.Header.Set("Authorization", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assemblyai poll: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("assemblyai poll error %d: %s", resp.StatusCode, string(body))
	}

	var out aaiTranscriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse poll response: %w", err)
	}
	return &out, nil
}

type aaiUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type aaiTranscriptRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code,omitempty"`
	SpeechModel  string `json:"speech_model,omitempty"`
}

type aaiTranscriptResponse struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"` // "queued", "processing", "completed", "error"
	Text          *string  `json:"text"`
	Error         string   `json:"error"`
	LanguageCode  string   `json:"language_code"`
	AudioDuration *float64 `json:"audio_duration"`
}

func (r *aaiTranscriptResponse) toTranscript() *Transcript {
	t := &Transcript{
		ID:       r.ID,
		Language: r.LanguageCode,
	}
	if r.Text != nil {
		t.Text = *r.Text
	}
	if r.AudioDuration != nil {
		t.Duration = *r.AudioDuration
	}
	return t
}
