package editor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/prompter/internal/rules"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	cursorMarker   = "> "
	noCursorMarker = "  "
	navigationHelp = "↑/↓: Navigate  Enter: Select  Esc: Back  Ctrl+C: Quit"
	inputHelp      = "Enter: Confirm  Esc: Cancel"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}
	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("prompter rules (default level: %s)", m.configuration.DefaultLevel)))
	lines = append(lines, "")

	switch m.state {
	case stateMenu:
		lines = append(lines, m.renderOptions(menuLabels())...)
	case stateSection:
		lines = append(lines, "Section:")
		lines = append(lines, m.renderOptions(sectionLabels())...)
	case statePattern:
		lines = append(lines, fmt.Sprintf("Pattern in %s:", m.section.Header()))
		lines = append(lines, m.renderOptions(rules.Patterns(m.configuration, m.section))...)
	case stateLevel:
		lines = append(lines, "Default level:")
		labels := make([]string, 0, len(levels))
		for _, level := range levels {
			labels = append(labels, string(level))
		}
		lines = append(lines, m.renderOptions(labels)...)
	case stateInput:
		lines = append(lines, fmt.Sprintf("Pattern for %s:", m.section.Header()))
		lines = append(lines, m.input.View())
	}

	if m.status != "" {
		lines = append(lines, "")
		style := statusStyle
		if m.statusIsError {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.status))
	}

	lines = append(lines, "")
	help := navigationHelp
	if m.state == stateInput {
		help = inputHelp
	}
	lines = append(lines, helpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) renderOptions(labels []string) []string {
	rendered := make([]string, 0, len(labels))
	for index, label := range labels {
		if index == m.cursor {
			rendered = append(rendered, selectedStyle.Render(cursorMarker+label))
			continue
		}
		rendered = append(rendered, noCursorMarker+label)
	}
	return rendered
}

func menuLabels() []string {
	labels := make([]string, 0, len(menuItems))
	for _, item := range menuItems {
		labels = append(labels, string(item))
	}
	return labels
}

func sectionLabels() []string {
	labels := make([]string, 0, len(rules.Sections))
	for _, section := range rules.Sections {
		labels = append(labels, section.Header())
	}
	return labels
}
