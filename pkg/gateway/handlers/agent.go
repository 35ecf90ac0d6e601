package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/voicelane/voice-agent/pkg/agent"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

// TurnRunner runs one conversational turn against a session transcript.
type TurnRunner interface {
	RunTurn(ctx context.Context, sessionID string, in agent.Input) agent.TurnResult
}

// AgentChatHandler serves the conversational endpoint. It always answers
// 200 with a turn result; pipeline failures come back as spoken fallbacks
// rather than error statuses.
type AgentChatHandler struct {
	Config config.Config
	Turns  TurnRunner
}

func (h AgentChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sessionID := r.PathValue("session_id")
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	in := parseChatInput(r, h.Config.MaxBodyBytes)
	writeJSON(w, http.StatusOK, h.Turns.RunTurn(r.Context(), sessionID, in))
}

// parseChatInput extracts audio and/or text from the request body. Malformed
// bodies yield an empty Input; the pipeline answers those with its no-input
// fallback instead of a 4xx.
func parseChatInput(r *http.Request, maxMemory int64) agent.Input {
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return agent.Input{}
		}
		var in agent.Input
		if file, _, err := r.FormFile("file"); err == nil {
			data, readErr := io.ReadAll(file)
			file.Close()
			if readErr == nil {
				in.Audio = data
			}
		}
		in.Text = r.FormValue("text")
		return in
	case strings.HasPrefix(ct, "application/json"):
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return agent.Input{}
		}
		return agent.Input{Text: body.Text}
	default:
		return agent.Input{}
	}
}
