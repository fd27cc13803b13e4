package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"withefuck/internal/config"
	"withefuck/internal/logging"
)

// Fallbacks for unparsable or out-of-range wizard answers.
const (
	wizardHistoryFallback     = 3
	wizardTemperatureFallback = 0.0
)

// wizardField is one question of the configuration wizard.
type wizardField struct {
	label  string
	secret bool

	// required reports whether an empty answer is refused, given the answers so far.
	required func(cfg *config.Config) bool
	current  func(cfg *config.Config) string
	apply    func(cfg *config.Config, value string)
}

func always(*config.Config) bool { return true }
func never(*config.Config) bool  { return false }

// wizardFields lists the questions in the order they are asked.
func wizardFields() []wizardField {
	return []wizardField{
		{
			label:    "Provider (openai or gemini)",
			required: never,
			current:  func(c *config.Config) string { return c.ActiveProvider() },
			apply: func(c *config.Config, v string) {
				v = strings.ToLower(v)
				if v != config.ProviderGemini {
					v = config.ProviderOpenAI
				}
				c.Provider = v
			},
		},
		{
			label:    "API Key",
			secret:   true,
			required: always,
			current:  func(c *config.Config) string { return c.APIKey },
			apply:    func(c *config.Config, v string) { c.APIKey = v },
		},
		{
			label: "API Endpoint (e.g. https://api.openai.com/v1/chat/completions)",
			required: func(c *config.Config) bool {
				return c.ActiveProvider() == config.ProviderOpenAI
			},
			current: func(c *config.Config) string { return c.APIEndpoint },
			apply:   func(c *config.Config, v string) { c.APIEndpoint = v },
		},
		{
			label:    "Model name (e.g. gpt-4)",
			required: always,
			current:  func(c *config.Config) string { return c.Model },
			apply:    func(c *config.Config, v string) { c.Model = v },
		},
		{
			label:    "Number of previous commands to include in context (less than 100)",
			required: never,
			current:  func(c *config.Config) string { return strconv.Itoa(int(c.HistoryCount)) },
			apply: func(c *config.Config, v string) {
				n, err := strconv.Atoi(v)
				if err != nil || n <= 0 || n > 100 {
					n = wizardHistoryFallback
				}
				c.HistoryCount = config.HistoryCount(n)
			},
		},
		{
			label:    "Sampling temperature for LLM (0.0-1.0)",
			required: never,
			current:  func(c *config.Config) string { return c.Temperature.String() },
			apply: func(c *config.Config, v string) {
				t, err := strconv.ParseFloat(v, 32)
				if err != nil || t < 0 || t > 1 {
					t = wizardTemperatureFallback
				}
				c.Temperature = config.Temperature(t)
			},
		},
	}
}

// maskSecret hides all but the last four characters.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// wizardModel is the bubbletea model of `wtf --config`.
type wizardModel struct {
	cfg     *config.Config
	fields  []wizardField
	index   int
	input   textinput.Model
	answers []string
	exists  bool
	errMsg  string
	styles  Styles

	done    bool
	aborted bool
}

func newWizardModel(cfg *config.Config, exists bool, styles Styles) wizardModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 80
	ti.Focus()

	m := wizardModel{
		cfg:    cfg,
		fields: wizardFields(),
		input:  ti,
		exists: exists,
		styles: styles,
	}
	m.prepareInput()
	return m
}

// prepareInput configures the text input for the current field.
func (m *wizardModel) prepareInput() {
	f := m.fields[m.index]
	m.input.Reset()
	m.input.EchoMode = textinput.EchoNormal
	if f.secret {
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
	}
	m.input.Placeholder = ""
	if cur := f.current(m.cfg); cur != "" {
		if f.secret {
			cur = maskSecret(cur)
		}
		m.input.Placeholder = cur
	}
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit records the answer for the current field and advances.
func (m wizardModel) submit() (tea.Model, tea.Cmd) {
	f := m.fields[m.index]
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		value = f.current(m.cfg)
	}
	if value == "" && f.required(m.cfg) {
		m.errMsg = fieldName(f.label) + " cannot be empty."
		return m, nil
	}
	m.errMsg = ""
	f.apply(m.cfg, value)

	shown := f.current(m.cfg)
	if f.secret {
		shown = maskSecret(shown)
	}
	m.answers = append(m.answers, shown)

	m.index++
	if m.index == len(m.fields) {
		m.done = true
		return m, tea.Quit
	}
	m.prepareInput()
	return m, nil
}

// fieldName strips the example hint from a label.
func fieldName(label string) string {
	if i := strings.Index(label, " ("); i > 0 {
		return label[:i]
	}
	return label
}

func (m wizardModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	st := m.styles
	var sb strings.Builder
	if m.exists {
		sb.WriteString("Existing configuration found. Press Enter to keep current values.\n\n")
	} else {
		sb.WriteString("No existing configuration found. Please enter values.\n\n")
	}
	for i, ans := range m.answers {
		fmt.Fprintf(&sb, "%s: %s\n", st.render(st.Label, fieldName(m.fields[i].label)), ans)
	}
	if len(m.answers) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(st.render(st.Label, m.fields[m.index].label))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.errMsg != "" {
		sb.WriteString(st.render(st.Error, m.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(st.render(st.Muted, "Enter to confirm, Esc to cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// errWizardCancelled is returned when the wizard is left with Esc or Ctrl+C.
var errWizardCancelled = errors.New("configuration cancelled")

// runConfigWizard runs the interactive wizard and saves the answers next to
// the binary.
func runConfigWizard(cmd *cobra.Command) error {
	path := config.WizardPath()
	_, statErr := os.Stat(path)
	cfg := config.ReadExisting(path)
	logging.Config("Config wizard started for %s (existing=%t)", path, statErr == nil)

	out := cmd.OutOrStdout()
	m := newWizardModel(cfg, statErr == nil, StylesFor(out))
	final, err := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out)).Run()
	if err != nil {
		return fmt.Errorf("config wizard failed: %w", err)
	}
	result, ok := final.(wizardModel)
	if !ok || !result.done {
		return errWizardCancelled
	}
	return saveWizardConfig(cmd, result.cfg, path)
}

func saveWizardConfig(cmd *cobra.Command, cfg *config.Config, path string) error {
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
	return nil
}
