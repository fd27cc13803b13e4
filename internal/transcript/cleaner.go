package transcript

import (
	"regexp"
	"strings"
)

// ReturnGlyph is the symbol some loggers (fish, zsh themes) print to show Enter.
const ReturnGlyph = "⏎"

const backspace = '\b'

// Removal patterns, applied in declaration order. Later patterns must not see
// bytes an earlier one already consumed, so the order is part of the contract.
var (
	// ESC [ params intermediates final
	csiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

	// ESC ] payload (BEL | ESC \)
	oscPattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

	// ESC Fe: single final byte in @-Z \ ^ _
	escSinglePattern = regexp.MustCompile(`\x1b[@-Z\\^_]`)

	// ESC with one intermediate byte and a final byte, e.g. ESC(B, ESC)0, ESC#8
	escTwoPattern = regexp.MustCompile(`\x1b[ -/][@-~]`)

	// keypad/mode switches
	escMiscPattern = regexp.MustCompile(`\x1b[=><]`)

	controlPattern = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

// CleanText strips terminal control noise from a whole transcript and trims the
// result. It is the legacy cleaner used by the fallback pass.
func CleanText(text string) string {
	return strings.TrimSpace(clean(text))
}

// CleanLine strips terminal control noise from a single line without trimming, so
// that block-relative structure survives.
func CleanLine(line string) string {
	return clean(line)
}

func clean(s string) string {
	s = csiPattern.ReplaceAllString(s, "")
	s = oscPattern.ReplaceAllString(s, "")
	s = escSinglePattern.ReplaceAllString(s, "")
	s = escTwoPattern.ReplaceAllString(s, "")
	s = escMiscPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, ReturnGlyph, "")
	s = resolveBackspaces(s)
	return controlPattern.ReplaceAllString(s, "")
}

// resolveBackspaces applies each backspace to the character emitted before it.
// Backspaces with nothing left to erase are dropped.
func resolveBackspaces(s string) string {
	if !strings.ContainsRune(s, backspace) {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == backspace {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// splitLines splits on '\n' and drops a single trailing '\r' from each line. A
// trailing newline does not produce an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}
