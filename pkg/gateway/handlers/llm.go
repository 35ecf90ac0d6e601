package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

type llmRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// LLMQueryHandler answers a one-shot text prompt without touching any
// session transcript.
type LLMQueryHandler struct {
	Config    config.Config
	Generator TextGenerator
}

func (h LLMQueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	req, err := decodeLLMRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := h.Generator.Generate(r.Context(), llmModel(h.Config, req.Model), req.Text)
	if err != nil {
		writeError(w, r, core.NewGenerationError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": strings.TrimSpace(reply)})
}

// LLMQueryTextHandler answers a one-shot text prompt and speaks the reply.
type LLMQueryTextHandler struct {
	Config    config.Config
	Generator TextGenerator
	Synth     Synthesizer
}

func (h LLMQueryTextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	req, err := decodeLLMRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := h.Generator.Generate(r.Context(), llmModel(h.Config, req.Model), req.Text)
	if err != nil {
		writeError(w, r, core.NewGenerationError(err))
		return
	}
	reply = truncateForSynthesis(strings.TrimSpace(reply), h.Config.SynthesisMaxChars)

	syn, err := h.Synth.Synthesize(r.Context(), reply, tts.SynthesizeOptions{
		Voice: h.Config.MurfVoiceID,
		Style: h.Config.MurfStyle,
	})
	if err != nil {
		writeError(w, r, core.NewSynthesisError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"llm_response": reply,
		"audio_url":    syn.AudioURL,
	})
}

// LLMQueryAudioHandler transcribes uploaded audio, answers it and speaks
// the reply. Unlike the session chat endpoint it is stateless.
type LLMQueryAudioHandler struct {
	Config      config.Config
	Transcriber Transcriber
	Generator   TextGenerator
	Synth       Synthesizer
}

func (h LLMQueryAudioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	data, _, err := readMultipartFile(r, "file", h.Config.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tr, err := h.Transcriber.Transcribe(r.Context(), bytes.NewReader(data), stt.TranscribeOptions{})
	if err != nil {
		writeError(w, r, core.NewTranscriptionError(err))
		return
	}
	if strings.TrimSpace(tr.Text) == "" {
		writeError(w, r, core.NewInvalidRequestError("no speech detected in audio"))
		return
	}

	reply, err := h.Generator.Generate(r.Context(), llmModel(h.Config, r.URL.Query().Get("model")), tr.Text)
	if err != nil {
		writeError(w, r, core.NewGenerationError(err))
		return
	}
	reply = truncateForSynthesis(strings.TrimSpace(reply), h.Config.SynthesisMaxChars)

	syn, err := h.Synth.Synthesize(r.Context(), reply, tts.SynthesizeOptions{
		Voice: h.Config.MurfVoiceID,
		Style: h.Config.MurfStyle,
	})
	if err != nil {
		writeError(w, r, core.NewSynthesisError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_transcription": tr.Text,
		"llm_response":       reply,
		"audio_url":          syn.AudioURL,
	})
}

func decodeLLMRequest(r *http.Request) (llmRequest, error) {
	var req llmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return llmRequest{}, core.NewInvalidRequestError("failed to decode request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return llmRequest{}, core.NewInvalidRequestErrorWithParam("text must not be empty", "text")
	}
	return req, nil
}

func llmModel(cfg config.Config, requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return cfg.GeminiModel
	}
	return requested
}

// truncateForSynthesis caps a reply to the synthesis character limit,
// marking the cut with an ellipsis. The one-shot endpoints truncate; the
// session chat endpoint chunks instead.
func truncateForSynthesis(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	keep := maxChars - 5
	if keep < 0 {
		keep = 0
	}
	n := 0
	for i := range text {
		if n == keep {
			return text[:i] + "..."
		}
		n++
	}
	return text
}
