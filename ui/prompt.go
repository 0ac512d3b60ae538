// Package ui provides the interactive prompts used when values are not
// supplied on the command line.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user aborts a prompt.
var ErrCanceled = errors.New("prompt canceled")

// Config contains prompt-specific configuration.
type Config struct {
	// AccentColor styles the prompt question.
	AccentColor string `env:"MIDI2DECTALK_ACCENT_COLOR" envDefault:"211"`
}

// TempoModel is the Bubble Tea model asking for the melody's tempo.
// Precise syncing may be needed, so decimals are accepted.
type TempoModel struct {
	input    textinput.Model
	question lipgloss.Style
	errStyle lipgloss.Style

	tempo    float64
	done     bool
	canceled bool
	errMsg   string
}

// NewTempoModel creates the tempo prompt.
func NewTempoModel(cfg Config) TempoModel {
	input := textinput.New()
	input.Placeholder = "120"
	input.CharLimit = 10
	input.Width = 12
	input.Focus()

	return TempoModel{
		input:    input,
		question: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.AccentColor)),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Init implements tea.Model.
func (m TempoModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m TempoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit

		case tea.KeyEnter:
			tempo, err := parseTempo(m.input.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.tempo = tempo
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m TempoModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.question.Render("What's the BPM?"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(m.errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// Tempo returns the entered tempo once the prompt is done.
func (m TempoModel) Tempo() float64 {
	return m.tempo
}

// parseTempo validates a tempo entry.
func parseTempo(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("enter a tempo in beats per minute")
	}
	tempo, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if tempo <= 0 {
		return 0, errors.New("the tempo must be positive")
	}
	return tempo, nil
}

// PromptTempo runs the tempo prompt and returns the entered value.
func PromptTempo(cfg Config) (float64, error) {
	model, err := tea.NewProgram(NewTempoModel(cfg)).Run()
	if err != nil {
		return 0, fmt.Errorf("unable to run prompt: %w", err)
	}

	m, ok := model.(TempoModel)
	if !ok || m.canceled || !m.done {
		return 0, ErrCanceled
	}
	return m.tempo, nil
}
