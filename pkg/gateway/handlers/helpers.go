// Package handlers holds the HTTP handlers for the voice-agent endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
	"github.com/voicelane/voice-agent/pkg/gateway/apierror"
	"github.com/voicelane/voice-agent/pkg/gateway/mw"
)

// Transcriber is the speech-to-text collaborator handlers depend on.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, opts stt.TranscribeOptions) (*stt.Transcript, error)
}

// Synthesizer is the text-to-speech collaborator handlers depend on.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts tts.SynthesizeOptions) (*tts.Synthesis, error)
}

// TextGenerator is the language-model collaborator handlers depend on.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID, _ := mw.RequestIDFrom(r.Context())
	coreErr, status := apierror.FromError(err, reqID)
	writeJSON(w, status, apierror.Envelope{Error: coreErr})
}

// readMultipartFile pulls the named file part out of a multipart request.
func readMultipartFile(r *http.Request, field string, maxMemory int64) ([]byte, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, nil, core.NewInvalidRequestError("failed to parse multipart form")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, core.NewInvalidRequestErrorWithParam("missing file field", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, core.NewInvalidRequestError("failed to read uploaded file")
	}
	return data, header, nil
}
