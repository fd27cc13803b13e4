package transcript

import (
	"fmt"
	"os"
	"strings"

	"withefuck/internal/logging"
)

// View holds two index-aligned copies of a transcript's lines: what the terminal
// was sent and what a human would read. Clean[i] is always CleanLine(Raw[i]).
type View struct {
	Raw   []string
	Clean []string
}

// NewView splits a transcript into lines and cleans each one.
func NewView(raw string) View {
	rawLines := splitLines(raw)
	clean := make([]string, len(rawLines))
	for i, ln := range rawLines {
		clean[i] = CleanLine(ln)
	}
	return View{Raw: rawLines, Clean: clean}
}

// Parser runs the full transcript pipeline.
type Parser struct {
	tool      string
	extractor *Extractor
}

// Option configures a Parser.
type Option func(*Parser)

// WithToolName sets the name the tool is invoked by, used to recognize and
// filter its own invocations.
func WithToolName(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.tool = name
		}
	}
}

// WithInfoFlags replaces the flags that suppress the continuation-line merge.
func WithInfoFlags(flags []string) Option {
	return func(p *Parser) {
		p.extractor.InfoFlags = flags
	}
}

// NewParser creates a parser for the default tool name.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		tool:      DefaultToolName,
		extractor: NewExtractor(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.extractor.ToolName = p.tool
	return p
}

// Parse extracts the filtered, ordered records from a raw transcript. A transcript
// without markers yields an empty slice, not an error.
func (p *Parser) Parse(raw string) []Record {
	timer := logging.StartTimer(logging.CategoryTranscript, "Transcript parse")
	defer timer.Stop()

	raw = strings.ToValidUTF8(raw, "\uFFFD")

	recs := p.parseAligned(raw)
	if len(recs) == 0 {
		logging.TranscriptDebug("Aligned pass found no records, trying whole-text fallback")
		recs = p.parseWholeText(raw)
	}

	filtered := FilterSelfInvocations(p.tool, recs)
	logging.TranscriptDebug("Parsed %d records (%d after self-invocation filter)", len(recs), len(filtered))
	return filtered
}

// parseAligned is the primary pass: per-line cleaning keeps the raw and clean
// views index-aligned so blocks can consult OSC titles in the raw text.
func (p *Parser) parseAligned(raw string) []Record {
	v := NewView(raw)
	hooks := HookIndex(v.Clean)
	logging.TranscriptDebug("Aligned pass: %d lines, %d hook markers", len(v.Raw), len(hooks))

	var recs []Record
	for _, blk := range Segment(hooks, v.Clean, v.Raw) {
		if rec, ok := p.extractor.Extract(blk); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// parseWholeText is the legacy pass over a once-cleaned copy of the transcript,
// using the heuristic extractor only.
func (p *Parser) parseWholeText(raw string) []Record {
	lines := splitLines(CleanText(raw))
	hooks := HookIndex(lines)
	logging.TranscriptDebug("Whole-text pass: %d lines, %d hook markers", len(lines), len(hooks))

	var recs []Record
	for _, blk := range Segment(hooks, lines, nil) {
		if rec, ok := p.extractor.Heuristic(blk.Clean); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// ParseFile reads a transcript once and parses it.
func (p *Parser) ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.TranscriptWarn("Failed to read transcript %s: %v", path, err)
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	recs := p.Parse(string(data))
	logging.Audit(logging.AuditEvent{
		Type:    logging.AuditTranscriptParsed,
		Target:  path,
		Success: true,
		Fields:  map[string]interface{}{"bytes": len(data), "records": len(recs)},
	})
	return recs, nil
}

// LastN returns the last n records of the transcript at path.
func (p *Parser) LastN(path string, n int) ([]Record, error) {
	recs, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return LastN(recs, n), nil
}

// GetLastNCommands locates the most recent transcript and returns its last n
// records.
func GetLastNCommands(n int) ([]Record, error) {
	path, err := LatestLogPath()
	if err != nil {
		return nil, err
	}
	return NewParser().LastN(path, n)
}
