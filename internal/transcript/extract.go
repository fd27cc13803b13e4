package transcript

import (
	"regexp"
	"strings"
)

// Record is one logged command and what it printed. An empty Command marks
// output folded in from a self-invocation with no earlier record to attach to.
type Record struct {
	Command string `json:"command"`
	Output  string `json:"output"`
}

// DefaultToolName is the name the tool is invoked by.
const DefaultToolName = "wtf"

// DefaultInfoFlags are the flags after which a tool invocation on the line below
// the command is not treated as a wrapped command echo.
var DefaultInfoFlags = []string{
	"--help",
	"-h",
	"-v",
	"-V",
	"--version",
	"--config",
	"--update",
	"--uninstall",
}

// Extractor picks the command and output out of a block.
type Extractor struct {
	ToolName  string
	InfoFlags []string
}

// NewExtractor returns an extractor for the default tool name and flags.
func NewExtractor() *Extractor {
	return &Extractor{ToolName: DefaultToolName, InfoFlags: DefaultInfoFlags}
}

// Extract returns the record for a block. The heuristic result is the baseline;
// when the raw block carries an OSC title the title decides the command and the
// output is recomputed from what follows the title.
func (e *Extractor) Extract(b Block) (Record, bool) {
	rec, ok := e.Heuristic(b.Clean)
	if !ok {
		return Record{}, false
	}

	title, found := ParseOSCTitle(b.Raw)
	if !found {
		return rec, true
	}
	if cmd := CommandFromTitle(title.Text); cmd != "" {
		rec.Command = cmd
	}
	rec.Output = outputAfter(b.Raw[title.End:], rec.Command)
	return rec, true
}

// Heuristic finds the first line that is neither blank, noise, a prompt nor a
// lone letter and treats it as the command; everything after it is output.
func (e *Extractor) Heuristic(lines []string) (Record, bool) {
	cmdIdx := -1
	for i, ln := range lines {
		s := strings.TrimSpace(ln)
		if s == "" || isNoiseLine(s) || looksLikePrompt(s) || isStrayKey(s) {
			continue
		}
		cmdIdx = i
		break
	}
	if cmdIdx < 0 {
		return Record{}, false
	}

	cmd := strings.TrimSpace(lines[cmdIdx])
	outStart := cmdIdx + 1

	// Two-line prompt themes echo the real command on the next line.
	if outStart < len(lines) && e.isContinuation(lines[outStart]) {
		cmd += "\n" + lines[outStart]
		outStart++
	}

	out := strings.TrimSpace(strings.Join(lines[outStart:], "\n"))
	return Record{Command: cmd, Output: out}, true
}

// isContinuation reports whether the line holds the tool name as a whole word that
// is not directly followed by one of the informational flags. Only the first
// whole-word occurrence is considered.
func (e *Extractor) isContinuation(line string) bool {
	tool := strings.ToLower(e.toolName())
	lower := strings.ToLower(line)

	for i := 0; i+len(tool) <= len(lower); i++ {
		if lower[i:i+len(tool)] != tool {
			continue
		}
		j := i + len(tool)
		leftOK := i == 0 || !isWordByte(lower[i-1])
		rightOK := j == len(lower) || !isWordByte(lower[j])
		if !leftOK || !rightOK {
			continue
		}
		rest := strings.TrimLeft(lower[j:], " \t")
		for _, flag := range e.InfoFlags {
			if strings.HasPrefix(rest, strings.ToLower(flag)) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *Extractor) toolName() string {
	if e.ToolName == "" {
		return DefaultToolName
	}
	return e.ToolName
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isNoiseLine reports lines that are empty once the return glyph is removed.
func isNoiseLine(ln string) bool {
	return strings.TrimSpace(strings.ReplaceAll(ln, ReturnGlyph, "")) == ""
}

// isStrayKey reports a line holding a single ASCII letter, such as a y/n answer
// echoed ahead of the command.
func isStrayKey(ln string) bool {
	return len(ln) == 1 && ((ln[0] >= 'a' && ln[0] <= 'z') || (ln[0] >= 'A' && ln[0] <= 'Z'))
}

// looksLikePrompt matches user@host style prompts ending in '#' or '$'. A command
// line that happens to contain '@' and end in '$' is misread as a prompt too.
func looksLikePrompt(ln string) bool {
	s := strings.TrimSpace(ln)
	return strings.Contains(s, "@") && (strings.HasSuffix(s, "#") || strings.HasSuffix(s, "$"))
}

// =============================================================================
// OSC TITLES
// =============================================================================

var (
	oscTitlePattern = regexp.MustCompile(`\x1b\]([02]);([^\x07\x1b]*)(?:\x07|\x1b\\)`)
	titleTagPattern = regexp.MustCompile(`^\[[^\]]*\][ \t]+(.*)$`)
)

// OSCTitle is a window/tab title set through OSC 0 or OSC 2.
type OSCTitle struct {
	Kind int
	Text string
	// End is the byte offset just past the terminating BEL or ST.
	End int
}

// ParseOSCTitle returns the last OSC 0/2 title in raw. Later titles win because
// they reflect the terminal's final state.
func ParseOSCTitle(raw string) (OSCTitle, bool) {
	matches := oscTitlePattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return OSCTitle{}, false
	}
	m := matches[len(matches)-1]
	kind := 0
	if raw[m[2]:m[3]] == "2" {
		kind = 2
	}
	return OSCTitle{Kind: kind, Text: raw[m[4]:m[5]], End: m[1]}, true
}

// CommandFromTitle extracts the command from titles like "[host] make test ~/src".
// A leading bracketed tag and a trailing working-directory token are dropped.
func CommandFromTitle(title string) string {
	s := strings.TrimSpace(title)
	if s == "" {
		return ""
	}
	if m := titleTagPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if last == "~" || strings.HasPrefix(last, "/") || strings.HasPrefix(last, "~") {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// outputAfter rebuilds output from the raw text that follows a title. Lines that
// echo the command, fully or as a partial prefix, are dropped.
func outputAfter(raw, cmd string) string {
	var kept []string
	for _, ln := range splitLines(raw) {
		s := strings.TrimSpace(CleanLine(ln))
		if s == "" {
			continue
		}
		if cmd != "" && (s == cmd || (len(s) < len(cmd) && strings.HasPrefix(cmd, s))) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
