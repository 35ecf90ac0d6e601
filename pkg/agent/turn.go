// Package agent implements the conversational turn pipeline: resolve the
// caller's input to text, grow the session transcript, ask the language model
// for a reply, and synthesize that reply chunk by chunk.
package agent

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session's conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Input is the raw material extracted from a chat request before resolution.
// Audio takes precedence over Text when both are present.
type Input struct {
	Audio []byte
	Text  string
}
