// Package apierror maps pipeline errors to HTTP responses for the peripheral
// endpoints. The conversational chat endpoint never uses this path for
// business failures; it degrades to spoken fallbacks instead.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/voicelane/voice-agent/pkg/core"
)

type Envelope struct {
	Error *core.Error `json:"error"`
}

func FromError(err error, requestID string) (*core.Error, int) {
	if err == nil {
		return nil, http.StatusOK
	}

	// Context timeouts/cancellation.
	if errors.Is(err, context.DeadlineExceeded) {
		return &core.Error{
			Type:      core.ErrAPI,
			Message:   "request timeout",
			RequestID: requestID,
		}, http.StatusGatewayTimeout
	}
	if errors.Is(err, context.Canceled) {
		return &core.Error{
			Type:      core.ErrAPI,
			Message:   "request cancelled",
			RequestID: requestID,
		}, http.StatusRequestTimeout
	}

	// Already canonical.
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr != nil {
		out := *coreErr
		out.RequestID = requestID
		return &out, statusFromType(coreErr.Type)
	}

	// Unknown errors: treat as internal (do not leak details by default).
	return &core.Error{
		Type:      core.ErrAPI,
		Message:   "internal error",
		RequestID: requestID,
	}, http.StatusInternalServerError
}

func statusFromType(t core.ErrorType) int {
	switch t {
	case core.ErrInvalidRequest, core.ErrInputMissing:
		return http.StatusBadRequest
	case core.ErrTranscription, core.ErrGeneration, core.ErrSynthesis:
		// Upstream provider failures surface as 500 with the provider's
		// message, matching the original service.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
