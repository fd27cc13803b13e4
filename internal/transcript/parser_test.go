package transcript

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bashMarkerLine = "----- Shell log started. -----"

func transcriptOf(blocks ...string) string {
	var b strings.Builder
	b.WriteString(bashMarkerLine + "\r\n")
	for _, blk := range blocks {
		b.WriteString(blk)
		b.WriteString("\r\n" + bashMarkerLine + "\r\n")
	}
	return b.String()
}

func TestParseRoundTrip(t *testing.T) {
	raw := bashMarkerLine + "\ncmd\noutput line 1\noutput line 2\n" + bashMarkerLine + "\n"
	got := NewParser().Parse(raw)
	assert.Equal(t, []Record{{Command: "cmd", Output: "output line 1\noutput line 2"}}, got)
}

func TestParseRealisticBash(t *testing.T) {
	raw := transcriptOf(
		"\x1b[01;32mme@box\x1b[00m:\x1b[01;34m~\x1b[00m$\r\ngit stauts\r\ngit: 'stauts' is not a git command. See 'git --help'.",
		"me@box:~$\r\nls -la\r\ntotal 0",
		"me@box:~$\r\nwtf\r\n\x1b[32mgit status\x1b[0m [enter/ctrl+c]",
	)
	got := NewParser().Parse(raw)
	want := []Record{
		{Command: "git stauts", Output: "git: 'stauts' is not a git command. See 'git --help'."},
		{Command: "ls -la", Output: "total 0\ngit status [enter/ctrl+c]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseZshWithTitles(t *testing.T) {
	raw := "Shell log started.\n" +
		"\x1b]2;[zsh] cargo build ~/proj\x07cargo bui\n" +
		"cargo build\n" +
		"error[E0425]: cannot find value `x`\n" +
		"Shell log started.\n" +
		"\x1b]0;wtf --logs\x07wtf --logs\n" +
		"Last command and its output:\n" +
		"Shell log started.\n"

	got := NewParser().Parse(raw)
	want := []Record{{Command: "cargo build", Output: "error[E0425]: cannot find value `x`"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFishGlyphMarker(t *testing.T) {
	raw := "Shell log started. \ue0b0\n" +
		"⏎\n" +
		"npm tset\n" +
		"Unknown command: \"tset\"\n" +
		"Shell log started. \ue0b0\n"
	got := NewParser().Parse(raw)
	assert.Equal(t, []Record{{Command: "npm tset", Output: "Unknown command: \"tset\""}}, got)
}

func TestParseNoMarkers(t *testing.T) {
	got := NewParser().Parse("just some text\nwithout markers\n")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, NewParser().Parse(""))
}

func TestParseSingleMarker(t *testing.T) {
	assert.Empty(t, NewParser().Parse(bashMarkerLine+"\nls\nfile\n"))
}

func TestParseSkipsEmptyBlocks(t *testing.T) {
	raw := transcriptOf("", "me@box:~$", "ls\r\na")
	assert.Equal(t, []Record{{Command: "ls", Output: "a"}}, NewParser().Parse(raw))
}

func TestParseWholeTextFallback(t *testing.T) {
	// Marker and command share a raw line, split only by a carriage return, so
	// the per-line pass sees one line per marker and no block content.
	raw := "Shell log started.\rls -la\nShell log started.\rpwd\n"

	p := NewParser()
	assert.Empty(t, p.parseAligned(raw))
	assert.Equal(t, []Record{{Command: "ls -la"}}, p.Parse(raw))
}

func TestParseInvalidUTF8(t *testing.T) {
	raw := bashMarkerLine + "\ncat bin\n\xff\xfeok\n" + bashMarkerLine + "\n"
	got := NewParser().Parse(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "cat bin", got[0].Command)
	assert.Equal(t, "\uFFFDok", got[0].Output)
}

func TestParseCustomToolName(t *testing.T) {
	raw := transcriptOf("make\r\nboom", "fix\r\nhint", "wtf\r\nkept")
	got := NewParser(WithToolName("fix")).Parse(raw)
	want := []Record{
		{Command: "make", Output: "boom\nhint"},
		{Command: "wtf", Output: "kept"},
	}
	assert.Equal(t, want, got)
}

func TestParseDropsFlaggedSelfInvocations(t *testing.T) {
	raw := transcriptOf(
		"ls -la\r\nf1",
		"wtf --logs --pretty\r\nLast command and its output:",
		"wtf -n 3\r\nUnable to fix the command or no fix needed.",
		"wtf --logs -f\r\nFollowing",
	)
	got := NewParser().Parse(raw)
	want := []Record{{Command: "ls -la", Output: "f1\nUnable to fix the command or no fix needed."}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCustomInfoFlags(t *testing.T) {
	raw := transcriptOf("❯ ~/src\r\nwtf --explain\r\nout")

	got := NewParser().Parse(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "❯ ~/src\nwtf --explain", got[0].Command)

	got = NewParser(WithInfoFlags([]string{"--explain"})).Parse(raw)
	assert.Equal(t, []Record{{Command: "❯ ~/src", Output: "wtf --explain\nout"}}, got)
}

func TestViewAlignment(t *testing.T) {
	raw := "\x1b[1mbold\x1b[0m\r\nab\bc\r\n\x1b]0;t\x07x\rprogress 50%\rprogress 100%\n\n⏎"
	v := NewView(raw)
	require.Equal(t, len(v.Raw), len(v.Clean))
	for i := range v.Raw {
		assert.Equal(t, CleanLine(v.Raw[i]), v.Clean[i], "line %d", i)
	}
	assert.Equal(t, []string{"bold", "ac", "x\nprogress 50%\nprogress 100%", "", ""}, v.Clean)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typescript-1")
	require.NoError(t, os.WriteFile(path, []byte(transcriptOf("aa\r\n1", "bb\r\n2", "cc\r\n3")), 0o644))

	p := NewParser()
	recs, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	last, err := p.LastN(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []Record{{"bb", "2"}, {"cc", "3"}}, last)

	_, err = p.ParseFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read log")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
