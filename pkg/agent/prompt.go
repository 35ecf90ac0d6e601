package agent

import "strings"

const promptHeader = "You are a friendly AI voice assistant.\n" +
	"Continue the conversation naturally based on the following history:"

// BuildPrompt renders a session's turn history into a single completion
// prompt: persona header, one "User:"/"Assistant:" line per turn in
// chronological order, and a trailing "Assistant:" cue for the model to
// complete.
func BuildPrompt(history []Turn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		label := "User"
		if t.Role == RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+t.Content)
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// WindowHistory returns the trailing maxTurns turns of history. A maxTurns of
// zero (or less) returns the whole history, which matches the unbounded
// behavior of the original service.
func WindowHistory(history []Turn, maxTurns int) []Turn {
	if maxTurns <= 0 || len(history) <= maxTurns {
		return history
	}
	return history[len(history)-maxTurns:]
}
