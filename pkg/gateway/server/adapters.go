package server

import (
	"bytes"
	"context"

	"github.com/voicelane/voice-agent/pkg/core/providers/gemini"
	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
)

// sttAdapter narrows an stt.Provider to the byte-oriented transcriber the
// turn pipeline consumes.
type sttAdapter struct {
	provider stt.Provider
	opts     stt.TranscribeOptions
}

func (a sttAdapter) Transcribe(ctx context.Context, audio []byte) (string, error) {
	tr, err := a.provider.Transcribe(ctx, bytes.NewReader(audio), a.opts)
	if err != nil {
		return "", err
	}
	return tr.Text, nil
}

// ttsAdapter narrows a tts.Provider to a text-in, URL-out synthesizer with
// the configured voice baked in.
type ttsAdapter struct {
	provider tts.Provider
	opts     tts.SynthesizeOptions
}

func (a ttsAdapter) Synthesize(ctx context.Context, text string) (string, error) {
	syn, err := a.provider.Synthesize(ctx, text, a.opts)
	if err != nil {
		return "", err
	}
	return syn.AudioURL, nil
}

// llmAdapter pins the configured model onto the Gemini client.
type llmAdapter struct {
	provider *gemini.Provider
	model    string
}

func (a llmAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	return a.provider.Generate(ctx, a.model, prompt)
}
