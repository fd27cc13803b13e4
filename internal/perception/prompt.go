package perception

import (
	"strings"

	"withefuck/internal/transcript"
)

// promptTemplate asks for exactly one corrected command. %s is the context.
const promptTemplate = "You are given a shell session log. Your task: output ONE corrected shell command that fixes the last command's error.\n\n" +
	"Strict requirements:\n" +
	"- Correct flags and syntax (add missing leading dashes for short flags).\n" +
	"- Keep the user's intent and minimal changes.\n" +
	"- Quote paths/args with spaces.\n" +
	"- Output only the command, no comments, no backticks, no code fences.\n" +
	"- If nothing needs fixing or it's ambiguous, output exactly: " + NoSuggestion + "\n\n" +
	"Context:\n"

// BuildContext renders records as the model sees them: command, blank line,
// output. Records are separated by a blank line and a command-less record
// contributes only its output.
func BuildContext(recs []transcript.Record) string {
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Command == "" {
			parts = append(parts, r.Output)
			continue
		}
		parts = append(parts, r.Command+"\n\n"+r.Output)
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt wraps a context block in the fix-this-command instructions.
func BuildPrompt(context string) string {
	return promptTemplate + context + "\n"
}
