package transcript

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	clean := []string{"M", "a", "b", "M", "M"}
	raw := []string{"M", "\x1b[1ma", "b", "M", "M"}

	got := Segment([]int{0, 3, 4}, clean, raw)
	want := []Block{
		{Start: 0, End: 3, Clean: []string{"a", "b"}, Raw: "\x1b[1ma\nb"},
		{Start: 3, End: 4, Clean: []string{}, Raw: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segment() mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, Segment([]int{2}, clean, raw))
	assert.Nil(t, Segment(nil, clean, raw))
	assert.Equal(t, "", Segment([]int{0, 3}, clean, nil)[0].Raw)
}

func TestHeuristic(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		lines []string
		want  Record
		ok    bool
	}{
		{
			name:  "prompt then command",
			lines: []string{"", "user@host:~$", "cmd", "output line 1", "output line 2"},
			want:  Record{Command: "cmd", Output: "output line 1\noutput line 2"},
			ok:    true,
		},
		{
			name:  "noise and padding",
			lines: []string{"⏎", "   ls -la  ", "", "f1", "f2", ""},
			want:  Record{Command: "ls -la", Output: "f1\nf2"},
			ok:    true,
		},
		{
			name:  "root prompt",
			lines: []string{"root@box:/#", "whoami", "root"},
			want:  Record{Command: "whoami", Output: "root"},
			ok:    true,
		},
		{
			name:  "command only",
			lines: []string{"make"},
			want:  Record{Command: "make"},
			ok:    true,
		},
		{
			name:  "two-line prompt echo",
			lines: []string{"❯ ~/src", "wtf", "out"},
			want:  Record{Command: "❯ ~/src\nwtf", Output: "out"},
			ok:    true,
		},
		{
			name:  "continuation is case-insensitive",
			lines: []string{"❯ ~/src", "WTF", "out"},
			want:  Record{Command: "❯ ~/src\nWTF", Output: "out"},
			ok:    true,
		},
		{
			name:  "informational flag is output",
			lines: []string{"cmd", "wtf --help", "usage"},
			want:  Record{Command: "cmd", Output: "wtf --help\nusage"},
			ok:    true,
		},
		{
			name:  "tool name must be a whole word",
			lines: []string{"cmd", "wtfx run"},
			want:  Record{Command: "cmd", Output: "wtfx run"},
			ok:    true,
		},
		{
			name:  "stray letter before command",
			lines: []string{"y", "rm -r build", "done"},
			want:  Record{Command: "rm -r build", Output: "done"},
			ok:    true,
		},
		{
			name:  "single non-letter is a command",
			lines: []string{"q", "7", "out"},
			want:  Record{Command: "7", Output: "out"},
			ok:    true,
		},
		{
			name:  "only stray letters",
			lines: []string{"y", "N"},
			ok:    false,
		},
		{
			name:  "prompt only",
			lines: []string{"user@host:~$", "  ", "⏎"},
			ok:    false,
		},
		{
			name:  "empty",
			lines: nil,
			ok:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Heuristic(tt.lines)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsContinuationCustomTool(t *testing.T) {
	e := &Extractor{ToolName: "fix", InfoFlags: []string{"--about"}}
	assert.True(t, e.isContinuation("sudo fix"))
	assert.False(t, e.isContinuation("fix --about"))
	assert.False(t, e.isContinuation("wtf"))
	assert.False(t, e.isContinuation("prefix"))
}

func TestParseOSCTitle(t *testing.T) {
	raw := "\x1b]0;first\x07x\n\x1b]2;second\x1b\\after"
	title, ok := ParseOSCTitle(raw)
	require.True(t, ok)
	assert.Equal(t, 2, title.Kind)
	assert.Equal(t, "second", title.Text)
	assert.Equal(t, "after", raw[title.End:])

	_, ok = ParseOSCTitle("\x1b]1;icon only\x07")
	assert.False(t, ok)
	_, ok = ParseOSCTitle("plain")
	assert.False(t, ok)
}

func TestCommandFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"[host] make test ~/src", "make test"},
		{"[host]   git status", "git status"},
		{"git status", "git status"},
		{"npm run build ~", "npm run build"},
		{"cargo build /home/me/proj", "cargo build"},
		{"~", ""},
		{"   ", ""},
		{"[tag]", "[tag]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommandFromTitle(tt.title), "%q", tt.title)
	}
}

func TestExtractPrefersOSCTitle(t *testing.T) {
	rawLines := []string{
		"user@host$ ",
		"\x1b]0;[box] ls -la ~\x07ls -l",
		"total 0",
		"\x1b[34mfile.txt\x1b[0m",
	}
	clean := make([]string, len(rawLines))
	for i, ln := range rawLines {
		clean[i] = CleanLine(ln)
	}
	blk := Block{Clean: clean, Raw: strings.Join(rawLines, "\n")}

	rec, ok := NewExtractor().Extract(blk)
	require.True(t, ok)
	assert.Equal(t, Record{Command: "ls -la", Output: "total 0\nfile.txt"}, rec)
}

func TestExtractEmptyTitleKeepsHeuristicCommand(t *testing.T) {
	rawLines := []string{"\x1b]2;~\x07make", "error: no target"}
	clean := []string{CleanLine(rawLines[0]), CleanLine(rawLines[1])}
	blk := Block{Clean: clean, Raw: strings.Join(rawLines, "\n")}

	rec, ok := NewExtractor().Extract(blk)
	require.True(t, ok)
	assert.Equal(t, Record{Command: "make", Output: "error: no target"}, rec)
}

func TestExtractWithoutTitleMatchesHeuristic(t *testing.T) {
	clean := []string{"cmd", "out"}
	blk := Block{Clean: clean, Raw: "cmd\nout"}
	e := NewExtractor()

	got, ok := e.Extract(blk)
	require.True(t, ok)
	want, _ := e.Heuristic(clean)
	assert.Equal(t, want, got)
}
