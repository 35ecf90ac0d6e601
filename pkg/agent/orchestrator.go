package agent

import (
	"context"
	"log/slog"
	"strings"
)

// Fallback lines spoken when a pipeline stage fails. The chat endpoint never
// surfaces an error to the caller; it answers with one of these instead.
const (
	FallbackNoInput    = "I didn’t catch anything. Can you try again?"
	FallbackAudio      = "Sorry, I couldn’t process the audio."
	FallbackReply      = "I had trouble thinking of a reply, but let's keep going."
	FallbackUnexpected = "Something unexpected happened, but I’m still here!"
)

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Generator produces a reply for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer converts a bounded text chunk to audio and returns a reference
// (URL) to the generated audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// TranscriptStore is the subset of session storage the orchestrator needs.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, role Role, content string) error
	History(ctx context.Context, sessionID string) ([]Turn, error)
}

// Orchestrator sequences one conversational turn through resolution, history,
// generation and synthesis.
type Orchestrator struct {
	Store       TranscriptStore
	Transcriber Transcriber
	Generator   Generator
	Synthesizer Synthesizer
	Logger      *slog.Logger

	// MaxHistoryTurns windows the transcript fed to the prompt. Zero sends
	// the whole history, matching the original behavior.
	MaxHistoryTurns int

	// SynthesisMaxChars caps each synthesis call. Zero means the Murf
	// limit of 3000 characters.
	SynthesisMaxChars int
}

// TurnResult is the terminal payload of one conversational turn. Success is
// true even on degraded turns; failures are narrated in ReplyText only.
type TurnResult struct {
	Success   bool     `json:"success"`
	ReplyText string   `json:"gemini_text"`
	AudioURLs []string `json:"audio_urls"`
	History   []Turn   `json:"history"`
}

// RunTurn executes one conversational turn for a session. Every failure path
// degrades to a spoken fallback rather than an error: a transcription failure
// or empty request short-circuits without touching history, a generation
// failure substitutes the fallback reply (which is still appended and
// synthesized), and any synthesis failure discards the whole audio list.
func (o *Orchestrator) RunTurn(ctx context.Context, sessionID string, in Input) (result TurnResult) {
	defer func() {
		if v := recover(); v != nil {
			o.logger().Error("turn panicked", "session_id", sessionID, "panic", v)
			result = o.degraded(ctx, sessionID, FallbackUnexpected)
		}
	}()

	res := o.resolveInput(ctx, in)
	switch res.Kind {
	case ResolvedAudioFailed:
		return o.degraded(ctx, sessionID, FallbackAudio)
	case ResolvedNoInput:
		return o.degraded(ctx, sessionID, FallbackNoInput)
	}

	o.append(ctx, sessionID, RoleUser, res.Text)

	reply := o.generateReply(ctx, sessionID)

	o.append(ctx, sessionID, RoleAssistant, reply)

	return TurnResult{
		Success:   true,
		ReplyText: reply,
		AudioURLs: o.synthesizeAll(ctx, reply),
		History:   o.history(ctx, sessionID),
	}
}

func (o *Orchestrator) generateReply(ctx context.Context, sessionID string) string {
	history := WindowHistory(o.history(ctx, sessionID), o.MaxHistoryTurns)
	reply, err := o.Generator.Generate(ctx, BuildPrompt(history))
	if err != nil {
		o.logger().Warn("generation failed, substituting fallback reply",
			"session_id", sessionID, "error", err)
		return FallbackReply
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return FallbackReply
	}
	return reply
}

// synthesizeAll synthesizes the reply one bounded chunk at a time, in order.
// Any failure discards the URLs accumulated so far; partial audio is never
// returned.
func (o *Orchestrator) synthesizeAll(ctx context.Context, reply string) []string {
	chunks := SplitText(reply, o.SynthesisMaxChars)
	urls := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		url, err := o.Synthesizer.Synthesize(ctx, chunk)
		if err != nil {
			o.logger().Warn("synthesis failed, dropping audio for this turn", "error", err)
			return []string{}
		}
		urls = append(urls, url)
	}
	return urls
}

// degraded builds the canned short-circuit payload. It reads history but
// never appends to it.
func (o *Orchestrator) degraded(ctx context.Context, sessionID, line string) TurnResult {
	return TurnResult{
		Success:   true,
		ReplyText: line,
		AudioURLs: []string{},
		History:   o.history(ctx, sessionID),
	}
}

func (o *Orchestrator) append(ctx context.Context, sessionID string, role Role, content string) {
	if err := o.Store.Append(ctx, sessionID, role, content); err != nil {
		o.logger().Warn("history append failed", "session_id", sessionID, "role", role, "error", err)
	}
}

func (o *Orchestrator) history(ctx context.Context, sessionID string) []Turn {
	turns, err := o.Store.History(ctx, sessionID)
	if err != nil {
		o.logger().Warn("history read failed", "session_id", sessionID, "error", err)
		return []Turn{}
	}
	if turns == nil {
		return []Turn{}
	}
	return turns
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
