// Package stt provides speech-to-text functionality.
package stt

import (
	"context"
	"io"
)

// Provider is the interface for speech-to-text services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error)
}

// TranscribeOptions configures transcription.
type TranscribeOptions struct {
	Language string // Language code hint
	Model    string // Provider speech model
}

// Transcript is the result of transcription.
type Transcript struct {
	ID       string  // Provider job identifier
	Text     string  // Transcribed text
	Language string  // Detected language (if reported)
	Duration float64 // Audio duration in seconds (if reported)
}
