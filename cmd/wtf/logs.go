package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"withefuck/internal/transcript"
)

// logsHeader is the line printed above the records.
func logsHeader(count int) string {
	if count == 1 {
		return "Last command and its output:"
	}
	return fmt.Sprintf("Last %d commands and their outputs:", count)
}

// formatLogs renders records the way --logs prints them.
func formatLogs(recs []transcript.Record, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.render(st.Header, logsHeader(len(recs))))
	sb.WriteString("\n\n")
	for _, r := range recs {
		sb.WriteString(st.render(st.Command, "$ "+r.Command))
		sb.WriteString("\n")
		if r.Output == "" {
			sb.WriteString(st.render(st.Muted, "(No output)"))
		} else {
			sb.WriteString(r.Output)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// markdownLogs renders records as a markdown document for glamour.
func markdownLogs(recs []transcript.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", logsHeader(len(recs)))
	for _, r := range recs {
		fence := codeFence(r.Command + "\n" + r.Output)
		fmt.Fprintf(&sb, "%ssh\n$ %s\n%s\n\n", fence, r.Command, fence)
		if r.Output == "" {
			sb.WriteString("*(No output)*\n\n")
			continue
		}
		fmt.Fprintf(&sb, "%s\n%s\n%s\n\n", fence, r.Output, fence)
	}
	return sb.String()
}

// codeFence returns a backtick fence longer than any run inside text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, c := range text {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// logRenderer turns records into the text written to out.
type logRenderer func(recs []transcript.Record) string

func newLogRenderer(out io.Writer, pretty bool) logRenderer {
	st := StylesFor(out)
	plain := func(recs []transcript.Record) string { return formatLogs(recs, st) }
	if !pretty {
		return plain
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if st.color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
		return plain
	}
	return func(recs []transcript.Record) string {
		rendered, err := renderer.Render(markdownLogs(recs))
		if err != nil {
			logger.Warn("markdown render failed", zap.Error(err))
			return plain(recs)
		}
		return rendered
	}
}

// runLogs prints the last n records. Lookup and read failures are reported as
// warnings and do not fail the command.
func runLogs(cmd *cobra.Command, n int) error {
	out := cmd.OutOrStdout()
	render := newLogRenderer(out, prettyLogs)

	if followLogs {
		return followTranscript(cmd, n, render)
	}

	recs, err := lastRecords(n)
	if err != nil {
		warn(cmd.ErrOrStderr(), err)
		return nil
	}
	fmt.Fprint(out, render(recs))
	return nil
}

// followTranscript reprints the records every time the transcript changes
// until interrupted.
func followTranscript(cmd *cobra.Command, n int, render logRenderer) error {
	path, err := transcript.LatestLogPath()
	if err != nil {
		warn(cmd.ErrOrStderr(), err)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	st := StylesFor(out)
	w := &transcript.Watcher{Parser: newParser(), Count: n}
	fmt.Fprintln(cmd.ErrOrStderr(), st.render(st.Muted, "Following "+path+" (Ctrl+C to stop)"))

	first := true
	err = w.Watch(ctx, path, func(recs []transcript.Record) {
		if !first {
			fmt.Fprintln(out, st.render(st.Muted, strings.Repeat("─", 40)))
		}
		first = false
		fmt.Fprint(out, render(recs))
	})
	if err != nil {
		warn(cmd.ErrOrStderr(), err)
	}
	return nil
}

func warn(w io.Writer, err error) {
	st := StylesFor(w)
	fmt.Fprintln(w, st.render(st.Error, "Warning: "+err.Error()))
}
