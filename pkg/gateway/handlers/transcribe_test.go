package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribeHandler_Success(t *testing.T) {
	h := TranscribeHandler{Config: testConfig(), Transcriber: &fakeTranscriberHTTP{text: "hello there"}}

	body, ct := multipartAudio(t, "a.webm", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/transcribe/file", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["transcription"] != "hello there" {
		t.Fatalf("transcription=%q", resp["transcription"])
	}
}

func TestTranscribeHandler_UpstreamFailure(t *testing.T) {
	h := TranscribeHandler{Config: testConfig(), Transcriber: &fakeTranscriberHTTP{err: errors.New("stt down")}}

	body, ct := multipartAudio(t, "a.webm", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/transcribe/file", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp map[string]map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["error"]["type"] != "transcription_error" {
		t.Fatalf("error=%v", resp["error"])
	}
}

func TestEchoHandler_RoundTrip(t *testing.T) {
	h := EchoHandler{
		Config:      testConfig(),
		Transcriber: &fakeTranscriberHTTP{text: "say it back"},
		Synth:       &fakeSynthesizer{},
	}

	body, ct := multipartAudio(t, "a.webm", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/tts/echo", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["transcription"] != "say it back" || resp["audio_url"] == "" {
		t.Fatalf("resp=%v", resp)
	}
}

func TestEchoHandler_SilentAudio(t *testing.T) {
	h := EchoHandler{
		Config:      testConfig(),
		Transcriber: &fakeTranscriberHTTP{text: "   "},
		Synth:       &fakeSynthesizer{},
	}

	body, ct := multipartAudio(t, "a.webm", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/tts/echo", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}
