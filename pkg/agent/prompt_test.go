package agent

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Format(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi there"},
		{Role: RoleUser, Content: "How are you?"},
	}
	got := BuildPrompt(history)

	if !strings.HasPrefix(got, promptHeader) {
		t.Fatalf("prompt missing header: %q", got)
	}
	if !strings.HasSuffix(got, "\n\nAssistant:") {
		t.Fatalf("prompt missing trailing cue: %q", got)
	}
	want := "User: Hello\nAssistant: Hi there\nUser: How are you?"
	if !strings.Contains(got, want) {
		t.Fatalf("prompt=%q, want to contain %q", got, want)
	}
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	got := BuildPrompt(nil)
	if !strings.HasPrefix(got, promptHeader) || !strings.HasSuffix(got, "Assistant:") {
		t.Fatalf("prompt=%q", got)
	}
}

func TestWindowHistory(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}

	if got := WindowHistory(history, 0); len(got) != 3 {
		t.Fatalf("maxTurns=0: turns=%d, want 3", len(got))
	}
	if got := WindowHistory(history, 5); len(got) != 3 {
		t.Fatalf("maxTurns=5: turns=%d, want 3", len(got))
	}
	got := WindowHistory(history, 2)
	if len(got) != 2 || got[0].Content != "two" || got[1].Content != "three" {
		t.Fatalf("maxTurns=2: turns=%v", got)
	}
}
