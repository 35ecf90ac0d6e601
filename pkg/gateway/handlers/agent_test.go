package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicelane/voice-agent/pkg/agent"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

type fakeTurnRunner struct {
	sessionID string
	input     agent.Input
	result    agent.TurnResult
}

func (f *fakeTurnRunner) RunTurn(ctx context.Context, sessionID string, in agent.Input) agent.TurnResult {
	f.sessionID = sessionID
	f.input = in
	return f.result
}

func testConfig() config.Config {
	return config.Config{
		MaxBodyBytes:      16 << 20,
		MurfVoiceID:       "en-UK-peter",
		MurfStyle:         "Conversational",
		SynthesisMaxChars: 3000,
		GeminiModel:       "gemini-1.5-flash",
	}
}

func TestAgentChat_JSONText(t *testing.T) {
	runner := &fakeTurnRunner{result: agent.TurnResult{
		Success:   true,
		ReplyText: "hi",
		AudioURLs: []string{"https://audio.example/1"},
		History:   []agent.Turn{{Role: agent.RoleUser, Content: "Hello"}},
	}}
	h := AgentChatHandler{Config: testConfig(), Turns: runner}

	req := httptest.NewRequest(http.MethodPost, "/agent/chat/s1", strings.NewReader(`{"text":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("session_id", "s1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if runner.sessionID != "s1" {
		t.Fatalf("session_id=%q", runner.sessionID)
	}
	if runner.input.Text != "Hello" || runner.input.Audio != nil {
		t.Fatalf("input=%+v", runner.input)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ok, _ := resp["success"].(bool); !ok {
		t.Fatalf("success missing: %v", resp)
	}
	if resp["gemini_text"] != "hi" {
		t.Fatalf("gemini_text=%v", resp["gemini_text"])
	}
	if _, ok := resp["audio_urls"]; !ok {
		t.Fatalf("audio_urls missing: %v", resp)
	}
	if _, ok := resp["history"]; !ok {
		t.Fatalf("history missing: %v", resp)
	}
}

func TestAgentChat_MultipartAudio(t *testing.T) {
	runner := &fakeTurnRunner{result: agent.TurnResult{Success: true}}
	h := AgentChatHandler{Config: testConfig(), Turns: runner}

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	fw, _ := mp.CreateFormFile("file", "turn.webm")
	_, _ = fw.Write([]byte("audio-bytes"))
	_ = mp.WriteField("text", "typed too")
	_ = mp.Close()

	req := httptest.NewRequest(http.MethodPost, "/agent/chat/s2", &buf)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	req.SetPathValue("session_id", "s2")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if string(runner.input.Audio) != "audio-bytes" {
		t.Fatalf("audio=%q", runner.input.Audio)
	}
	if runner.input.Text != "typed too" {
		t.Fatalf("text=%q", runner.input.Text)
	}
}

func TestAgentChat_MalformedBodyBecomesEmptyInput(t *testing.T) {
	runner := &fakeTurnRunner{result: agent.TurnResult{
		Success:   true,
		ReplyText: agent.FallbackNoInput,
	}}
	h := AgentChatHandler{Config: testConfig(), Turns: runner}

	req := httptest.NewRequest(http.MethodPost, "/agent/chat/s3", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("session_id", "s3")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	// Still 200: the pipeline narrates bad input, it never 4xxes.
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if runner.input.Text != "" || runner.input.Audio != nil {
		t.Fatalf("input=%+v, want empty", runner.input)
	}
}

func TestAgentChat_MethodNotAllowed(t *testing.T) {
	h := AgentChatHandler{Config: testConfig(), Turns: &fakeTurnRunner{}}

	req := httptest.NewRequest(http.MethodGet, "/agent/chat/s1", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", rr.Code)
	}
}
