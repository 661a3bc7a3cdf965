// Package prompt collects the operator's decision on destructive
// changes: a terminal UI when attached to a TTY, a plain stdin read
// otherwise. Callers only see the answer string.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	changeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// Confirm shows the aggregated destructive change list and returns the
// operator's answer. An empty answer (or cancellation) tells the
// caller to abort.
func Confirm(blocking []string) (string, error) {
	if !isTerminal(os.Stdout) {
		return stdinConfirm(blocking)
	}

	m := newConfirmModel(blocking)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running confirmation prompt: %w", err)
	}

	cm := finalModel.(confirmModel)
	if cm.cancelled {
		return "", nil
	}
	return cm.input.Value(), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func stdinConfirm(blocking []string) (string, error) {
	fmt.Println("\nDestructive changes detected:")
	for _, msg := range blocking {
		fmt.Println(msg)
	}
	fmt.Print("\nProvide a default value for migration, or use --force to skip: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", nil
	}
	return scanner.Text(), nil
}

// confirmModel is the bubbletea model for the destructive change
// confirmation.
type confirmModel struct {
	blocking  []string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newConfirmModel(blocking []string) confirmModel {
	input := textinput.New()
	input.Placeholder = "default value"
	input.CharLimit = 256
	input.Focus()

	return confirmModel{
		blocking: blocking,
		input:    input,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Destructive changes detected:"))
	b.WriteString("\n\n")
	for _, msg := range m.blocking {
		b.WriteString(changeStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("Provide a default value for migration, or use --force to skip:"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(changeStyle.Render("enter to confirm, esc to abort"))
	b.WriteString("\n")
	return b.String()
}
