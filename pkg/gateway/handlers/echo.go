package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

// EchoHandler transcribes uploaded audio and reads it back in the
// configured voice.
type EchoHandler struct {
	Config      config.Config
	Transcriber Transcriber
	Synth       Synthesizer
}

func (h EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	syn, err := h.Synth.Synthesize(r.Context(), tr.Text, tts.SynthesizeOptions{
		Voice: h.Config.MurfVoiceID,
		Style: h.Config.MurfStyle,
	})
	if err != nil {
		writeError(w, r, core.NewSynthesisError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcription": tr.Text,
		"audio_url":     syn.AudioURL,
	})
}
