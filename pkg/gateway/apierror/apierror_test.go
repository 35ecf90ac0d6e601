package apierror

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/voicelane/voice-agent/pkg/core"
)

func TestFromError_Nil(t *testing.T) {
	coreErr, status := FromError(nil, "req_1")
	if coreErr != nil || status != http.StatusOK {
		t.Fatalf("err=%v status=%d", coreErr, status)
	}
}

func TestFromError_InvalidRequestIs400(t *testing.T) {
	coreErr, status := FromError(core.NewInvalidRequestErrorWithParam("text must not be empty", "text"), "req_1")
	if status != http.StatusBadRequest {
		t.Fatalf("status=%d", status)
	}
	if coreErr.Param != "text" || coreErr.RequestID != "req_1" {
		t.Fatalf("err=%+v", coreErr)
	}
}

func TestFromError_PipelineFailuresAre500(t *testing.T) {
	underlying := errors.New("upstream down")
	for _, err := range []error{
		core.NewTranscriptionError(underlying),
		core.NewGenerationError(underlying),
		core.NewSynthesisError(underlying),
	} {
		_, status := FromError(err, "")
		if status != http.StatusInternalServerError {
			t.Fatalf("err=%v status=%d", err, status)
		}
	}
}

func TestFromError_ContextErrors(t *testing.T) {
	if _, status := FromError(context.DeadlineExceeded, ""); status != http.StatusGatewayTimeout {
		t.Fatalf("deadline status=%d", status)
	}
	if _, status := FromError(context.Canceled, ""); status != http.StatusRequestTimeout {
		t.Fatalf("canceled status=%d", status)
	}
}

func TestFromError_UnknownHidesDetails(t *testing.T) {
	coreErr, status := FromError(errors.New("secret internals"), "req_2")
	if status != http.StatusInternalServerError {
		t.Fatalf("status=%d", status)
	}
	if coreErr.Message != "internal error" {
		t.Fatalf("message=%q leaked", coreErr.Message)
	}
}

func TestFromError_DoesNotMutateOriginal(t *testing.T) {
	orig := core.NewAPIError("x")
	FromError(orig, "req_3")
	if orig.RequestID != "" {
		t.Fatalf("original error mutated: %+v", orig)
	}
}
