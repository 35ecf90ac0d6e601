package agent

import (
	"context"
	"strings"
)

// ResolutionKind classifies the outcome of normalizing a request to text.
type ResolutionKind int

const (
	// ResolvedText means usable text was produced (typed or transcribed).
	ResolvedText ResolutionKind = iota
	// ResolvedNoInput means the request carried nothing usable.
	ResolvedNoInput
	// ResolvedAudioFailed means audio was present but transcription failed.
	ResolvedAudioFailed
)

// Resolution is the outcome of input resolution.
type Resolution struct {
	Kind ResolutionKind
	Text string
}

// resolveInput normalizes raw request input to text. Audio takes precedence
// over text; a transcription failure is distinguished from an empty request
// so the caller can answer with the right fallback line.
func (o *Orchestrator) resolveInput(ctx context.Context, in Input) Resolution {
	if len(in.Audio) > 0 {
		text, err := o.Transcriber.Transcribe(ctx, in.Audio)
		if err != nil {
			o.logger().Warn("transcription failed", "error", err)
			return Resolution{Kind: ResolvedAudioFailed}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return Resolution{Kind: ResolvedNoInput}
		}
		return Resolution{Kind: ResolvedText, Text: text}
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Resolution{Kind: ResolvedNoInput}
	}
	return Resolution{Kind: ResolvedText, Text: text}
}
