package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user leaves a prompt with ctrl+c or esc.
var ErrAborted = errors.New("aborted by user")

// Prompter asks questions on the terminal, one small bubbletea program per question.
type Prompter struct {
	opts []tea.ProgramOption
}

// NewPrompter creates a prompter. nil streams use the process terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return &Prompter{opts: opts}
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(m, p.opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// Select asks the user to pick one of choices; def is the preselected index.
func (p *Prompter) Select(title string, choices []string, def int) (string, error) {
	final, err := p.run(newSelectModel(title, choices, def))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.choices[m.cursor], nil
}

// Input asks for a line of text, re-asking until validate accepts it.
func (p *Prompter) Input(title string, validate func(string) error) (string, error) {
	final, err := p.run(newInputModel(title, validate))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(title string, def bool) (bool, error) {
	final, err := p.run(newConfirmModel(title, def))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.value, nil
}

// selectModel picks one entry from a short list.
type selectModel struct {
	title   string
	choices []string
	cursor  int
	done    bool
	aborted bool
}

func newSelectModel(title string, choices []string, def int) selectModel {
	if def < 0 || def >= len(choices) {
		def = 0
	}
	return selectModel{title: title, choices: choices, cursor: def}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "left", "up", "shift+tab", "h", "k":
		m.cursor = (m.cursor + len(m.choices) - 1) % len(m.choices)
	case "right", "down", "tab", "l", "j":
		m.cursor = (m.cursor + 1) % len(m.choices)
	default:
		// First letter jumps to a choice.
		for i, c := range m.choices {
			if strings.EqualFold(key.String(), c[:1]) {
				m.cursor = i
			}
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", PromptStyle.Render(m.title), ChoiceStyle.Render(m.choices[m.cursor]))
	}
	if m.aborted {
		return ""
	}

	parts := make([]string, len(m.choices))
	for i, c := range m.choices {
		if i == m.cursor {
			parts[i] = ChoiceStyle.Render("> " + c)
		} else {
			parts[i] = DimStyle.Render("  " + c)
		}
	}
	return fmt.Sprintf("%s %s\n%s\n",
		PromptStyle.Render(m.title),
		strings.Join(parts, " "),
		HelpStyle.Render("←/→ to choose • enter to confirm"))
}

// inputModel reads one line and keeps asking until it validates.
type inputModel struct {
	title    string
	input    textinput.Model
	validate func(string) error
	problem  string
	value    string
	done     bool
	aborted  bool
}

func newInputModel(title string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Focus()
	return inputModel{title: title, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			v := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(v); err != nil {
					m.problem = err.Error()
					m.input.Reset()
					return m, nil
				}
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", PromptStyle.Render(m.title), m.value)
	}
	if m.aborted {
		return ""
	}

	var sb strings.Builder
	if m.problem != "" {
		sb.WriteString(ErrorStyle.Render(m.problem))
		sb.WriteString("\n")
	}
	sb.WriteString(PromptStyle.Render(m.title))
	sb.WriteString(" ")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	return sb.String()
}

// confirmModel is a y/n question with a default.
type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func newConfirmModel(title string, def bool) confirmModel {
	return confirmModel{title: title, value: def}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	answer := "n"
	if m.value {
		answer = "y"
	}
	if m.done {
		return fmt.Sprintf("%s %s\n", PromptStyle.Render(m.title), answer)
	}
	if m.aborted {
		return ""
	}

	hint := "[y/N]"
	if m.value {
		hint = "[Y/n]"
	}
	return fmt.Sprintf("%s %s ", PromptStyle.Render(m.title), DimStyle.Render(hint))
}
