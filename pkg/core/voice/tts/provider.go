// Package tts provides text-to-speech functionality.
package tts

import "context"

// Provider is the interface for text-to-speech services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Synthesize converts text to audio.
	Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error)
}

// SynthesizeOptions configures synthesis.
type SynthesizeOptions struct {
	Voice  string // Voice identifier (Murf voice ID)
	Style  string // Speaking style
	Format string // Output format, provider default when empty
}

// Synthesis is the result of synthesis. Murf hosts the generated audio and
// returns a URL rather than raw bytes.
type Synthesis struct {
	AudioURL       string  // URL of the generated audio file
	LengthSeconds  float64 // Audio duration (if reported)
	RemainingChars int     // Remaining character quota (if reported)
}
