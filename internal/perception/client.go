// Package perception turns a transcript into a prompt and asks a language model
// for the corrected command.
package perception

import (
	"context"
	"strings"
)

// NoSuggestion is the model's answer when there is nothing to fix.
const NoSuggestion = "None"

// Client defines the interface for LLM backends.
type Client interface {
	// Suggest returns the corrected command and true, or false when the model
	// declined to suggest anything.
	Suggest(ctx context.Context, prompt string) (string, bool, error)
}

// interpret trims a completion and maps the sentinel (or nothing at all) to
// "no suggestion".
func interpret(content string) (string, bool) {
	s := strings.TrimSpace(content)
	if s == NoSuggestion || s == "" {
		return "", false
	}
	return s, true
}
