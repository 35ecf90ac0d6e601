package handlers

import (
	"bytes"
	"net/http"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

// TranscribeHandler returns the transcription of an uploaded audio file.
type TranscribeHandler struct {
	Config      config.Config
	Transcriber Transcriber
}

func (h TranscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"transcription": tr.Text})
}
