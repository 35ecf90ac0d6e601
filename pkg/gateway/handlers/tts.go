package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
	Style   string `json:"style"`
}

// TTSHandler turns a snippet of text into a hosted audio URL.
type TTSHandler struct {
	Config config.Config
	Synth  Synthesizer
}

func (h TTSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, core.NewInvalidRequestError("failed to decode request body"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, core.NewInvalidRequestErrorWithParam("text must not be empty", "text"))
		return
	}

	voice := req.VoiceID
	if voice == "" {
		voice = h.Config.MurfVoiceID
	}
	style := req.Style
	if style == "" {
		style = h.Config.MurfStyle
	}

	syn, err := h.Synth.Synthesize(r.Context(), req.Text, tts.SynthesizeOptions{Voice: voice, Style: style})
	if err != nil {
		writeError(w, r, core.NewSynthesisError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"audio_url": syn.AudioURL})
}
