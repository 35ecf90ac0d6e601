package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicelane/voice-agent/pkg/core/voice/stt"
	"github.com/voicelane/voice-agent/pkg/core/voice/tts"
)

type fakeSynthesizer struct {
	err      error
	lastText string
	lastOpts tts.SynthesizeOptions
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOptions) (*tts.Synthesis, error) {
	f.lastText = text
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &tts.Synthesis{AudioURL: "https://audio.example/out.mp3"}, nil
}

type fakeTranscriberHTTP struct {
	text string
	err  error
}

func (f *fakeTranscriberHTTP) Transcribe(ctx context.Context, audio io.Reader, opts stt.TranscribeOptions) (*stt.Transcript, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &stt.Transcript{Text: f.text}, nil
}

func TestTTSHandler_Success(t *testing.T) {
	synth := &fakeSynthesizer{}
	h := TTSHandler{Config: testConfig(), Synth: synth}

	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text":"read me"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["audio_url"] != "https://audio.example/out.mp3" {
		t.Fatalf("audio_url=%q", resp["audio_url"])
	}
	// Config voice applies when the request names none.
	if synth.lastOpts.Voice != "en-UK-peter" || synth.lastOpts.Style != "Conversational" {
		t.Fatalf("opts=%+v", synth.lastOpts)
	}
}

func TestTTSHandler_RequestVoiceWins(t *testing.T) {
	synth := &fakeSynthesizer{}
	h := TTSHandler{Config: testConfig(), Synth: synth}

	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text":"hi","voiceId":"en-US-ken","style":"Narration"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if synth.lastOpts.Voice != "en-US-ken" || synth.lastOpts.Style != "Narration" {
		t.Fatalf("opts=%+v", synth.lastOpts)
	}
}

func TestTTSHandler_EmptyText(t *testing.T) {
	h := TTSHandler{Config: testConfig(), Synth: &fakeSynthesizer{}}

	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text":"  "}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestTTSHandler_SynthesisFailure(t *testing.T) {
	h := TTSHandler{Config: testConfig(), Synth: &fakeSynthesizer{err: errors.New("voice down")}}

	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text":"hi"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp map[string]map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"]["type"] != "synthesis_error" {
		t.Fatalf("error=%v", resp["error"])
	}
}
