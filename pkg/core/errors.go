// Package core holds the error taxonomy shared by the voice-agent pipeline.
package core

import (
	"fmt"
)

// Error is the canonical error carried across the transcription, generation
// and synthesis stages.
type Error struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Param     string    `json:"param,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrInvalidRequest ErrorType = "invalid_request_error"
	ErrInputMissing   ErrorType = "input_missing_error"
	ErrTranscription  ErrorType = "transcription_error"
	ErrGeneration     ErrorType = "generation_error"
	ErrSynthesis      ErrorType = "synthesis_error"
	ErrAPI            ErrorType = "api_error"
)

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(message string) *Error {
	return &Error{
		Type:    ErrInvalidRequest,
		Message: message,
	}
}

// NewInvalidRequestErrorWithParam creates an invalid request error with a parameter.
func NewInvalidRequestErrorWithParam(message, param string) *Error {
	return &Error{
		Type:    ErrInvalidRequest,
		Message: message,
		Param:   param,
	}
}

// NewTranscriptionError wraps a speech-to-text failure.
func NewTranscriptionError(underlying error) *Error {
	return &Error{
		Type:    ErrTranscription,
		Message: fmt.Sprintf("transcription failed: %v", underlying),
	}
}

// NewGenerationError wraps a language-model failure.
func NewGenerationError(underlying error) *Error {
	return &Error{
		Type:    ErrGeneration,
		Message: fmt.Sprintf("generation failed: %v", underlying),
	}
}

// NewSynthesisError wraps a text-to-speech failure.
func NewSynthesisError(underlying error) *Error {
	return &Error{
		Type:    ErrSynthesis,
		Message: fmt.Sprintf("synthesis failed: %v", underlying),
	}
}

// NewAPIError creates a generic API error.
func NewAPIError(message string) *Error {
	return &Error{
		Type:    ErrAPI,
		Message: message,
	}
}
