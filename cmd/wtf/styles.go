package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by the prompt, the log printer and the wizard.
var (
	Success = lipgloss.Color("#8BC34A") // Lime Green
	Danger  = lipgloss.Color("#e53935") // Red
	Info    = lipgloss.Color("#2196F3") // Blue
	Muted   = lipgloss.Color("#6b7280")
)

// Styles holds the rendering styles for one output stream. The zero value
// renders plain text.
type Styles struct {
	Enter   lipgloss.Style
	Cancel  lipgloss.Style
	Header  lipgloss.Style
	Command lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Label   lipgloss.Style

	color bool
}

// PlainStyles renders without any escape sequences.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Enter: s, Cancel: s, Header: s, Command: s, Muted: s, Error: s, Label: s}
}

// ColorStyles renders with the wtf palette.
func ColorStyles() Styles {
	return Styles{
		Enter:   lipgloss.NewStyle().Foreground(Success),
		Cancel:  lipgloss.NewStyle().Foreground(Danger),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(Info),
		Command: lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(Danger),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(Info),
		color:   true,
	}
}

// colorDisabled reports whether WTF_NO_COLOR or NO_COLOR is set, empty or not.
func colorDisabled() bool {
	if _, ok := os.LookupEnv("WTF_NO_COLOR"); ok {
		return true
	}
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// StylesFor picks colored styles only for terminals with color allowed.
func StylesFor(w io.Writer) Styles {
	if colorDisabled() || !isTerminal(w) {
		return PlainStyles()
	}
	return ColorStyles()
}

// render applies st when color is on. Plain text passes through untouched so
// multi-line output keeps its original widths.
func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// confirmPrompt is the "[enter/ctrl+c]" hint printed after a suggestion.
func (s Styles) confirmPrompt() string {
	return "[" + s.render(s.Enter, "enter") + "/" + s.render(s.Cancel, "ctrl+c") + "]"
}
