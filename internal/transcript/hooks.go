package transcript

import (
	"regexp"
	"strings"
)

// HookPhrase is printed by the shell integration before every logged command.
const HookPhrase = "Shell log started."

var (
	// bash: ----- Shell log started. -----
	bashMarker = regexp.MustCompile(`^-+[ \t]+Shell log started\.[ \t]+-+$`)

	// zsh: the phrase alone, optionally padded
	zshMarker = regexp.MustCompile(`^[ \t]*Shell log started\.[ \t]*$`)

	// fish: a powerline glyph may follow, survive cleaning as a substitute
	// symbol, or be gone entirely.
	fishMarker = regexp.MustCompile(`^[ \t]*Shell log started\.[ \t]*(?:[^A-Za-z0-9_ \t].*)?$`)

	strictMarkers = []*regexp.Regexp{zshMarker, bashMarker, fishMarker}
)

// IsStrictHookMarker reports whether a cleaned line is a bash, zsh or fish style
// marker line.
func IsStrictHookMarker(line string) bool {
	line = strings.TrimRight(line, "\n")
	for _, re := range strictMarkers {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsHookMarker reports whether the phrase appears anywhere in the line. This is
// the generic fallback form.
func IsHookMarker(line string) bool {
	return strings.Contains(line, HookPhrase)
}

// HookIndex returns the strictly increasing indices of marker lines. Strict forms
// are tried first; the generic form is used only when the strict forms find fewer
// than two markers, since one marker cannot bound a block.
func HookIndex(lines []string) []int {
	idx := matchIndices(lines, IsStrictHookMarker)
	if len(idx) >= 2 {
		return idx
	}
	return matchIndices(lines, IsHookMarker)
}

func matchIndices(lines []string, match func(string) bool) []int {
	var idx []int
	for i, ln := range lines {
		if match(ln) {
			idx = append(idx, i)
		}
	}
	return idx
}
