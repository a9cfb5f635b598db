// Package repl implements sapling's interactive read-eval-print loop: a
// github.com/charmbracelet/bubbletea program with a
// github.com/charmbracelet/bubbles/textinput line editor and
// github.com/charmbracelet/lipgloss styling, modeled on the teacher's
// cli/cmd/repl package but scaled to Sapling's simpler single-mode
// grammar (no external-editor integration, no named-parameter signature
// overlay — spec.md's grammar has neither).
package repl

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/sapling/builtin"
	"github.com/ardnew/sapling/cache"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/parser"
	"github.com/ardnew/sapling/vm"
)

// Repl starts the interactive REPL.
type Repl struct {
	Dir string `default:"." help:"Directory used to resolve sibling .sap/.sapped imports" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(context.Context) error {
	hist := NewHistory(historyPath())
	_ = hist.Load()

	env := vm.NewEnv()
	builtin.Install(env)

	importer := cache.NewImporter(r.Dir, builtin.NewRegistry())
	machine := vm.New("", env, importer)

	program := tea.NewProgram(newModel(machine, hist))
	_, err := program.Run()

	return err
}

// historyPath returns the file used to persist REPL input across runs.
func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	dir = filepath.Join(dir, "sapling")
	_ = os.MkdirAll(dir, 0o700)

	return filepath.Join(dir, "repl_history")
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const prompt = "sapling> "

// model is the bubbletea model driving the REPL: a scrollback of
// evaluated lines and the text input that produces new ones.
type model struct {
	input    textinput.Model
	lines    []string
	history  *History
	histIdx  int
	machine  *vm.VM
	quitting bool
}

func newModel(machine *vm.VM, hist *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 0

	return model{
		input:   ti,
		history: hist,
		histIdx: len(hist.Entries()),
		machine: machine,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type { //nolint:exhaustive
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true

			return m, tea.Quit

		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")

			if strings.TrimSpace(line) == "" {
				return m, nil
			}

			if line == "exit" || line == "quit" {
				m.quitting = true

				return m, tea.Quit
			}

			_ = m.history.Append(line)
			m.histIdx = len(m.history.Entries())
			m.lines = append(m.lines, promptStyle.Render(prompt)+line)
			m.lines = append(m.lines, m.eval(line))

			return m, nil

		case tea.KeyUp:
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history.Entries()[m.histIdx])
				m.input.CursorEnd()
			}

			return m, nil

		case tea.KeyDown:
			entries := m.history.Entries()
			if m.histIdx < len(entries)-1 {
				m.histIdx++
				m.input.SetValue(entries[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(entries)
				m.input.SetValue("")
			}

			return m, nil

		case tea.KeyTab:
			value := m.input.Value()
			if matches, start := complete(m.machine.Env, value, len(value)); len(matches) > 0 {
				m.input.SetValue(value[:start] + matches[0])
				m.input.CursorEnd()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// eval parses and evaluates line against m.machine's persistent
// environment, returning a styled result or error line.
func (m model) eval(line string) string {
	code, err := parser.Parse(line)
	if err != nil {
		return errorStyle.Render((errs.Reporter{Source: line}).Format(err))
	}

	val, err := m.machine.Eval(code)
	if err != nil {
		return errorStyle.Render((errs.Reporter{Source: line}).Format(err))
	}

	return valueStyle.Render(val.Repr())
}

func (m model) View() string {
	var b strings.Builder

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.quitting {
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	return b.String()
}
