// Package editor is the interactive terminal editor for the rules file.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/prompter/internal/rules"
	"github.com/temirov/prompter/internal/types"
)

type state int

const (
	stateMenu state = iota
	stateSection
	statePattern
	stateInput
	stateLevel
)

type action int

const (
	actionAdd action = iota
	actionEdit
	actionDelete
)

// MenuItem is one entry of the main menu.
type MenuItem string

const (
	MenuAddRule         MenuItem = "Add rule"
	MenuEditRule        MenuItem = "Edit rule"
	MenuDeleteRule      MenuItem = "Delete rule"
	MenuSetDefaultLevel MenuItem = "Set default level"
	MenuSaveAndQuit     MenuItem = "Save and quit"
	MenuQuit            MenuItem = "Quit without saving"

	statusAdded        = "Added %q to [%s]"
	statusReplaced     = "Replaced pattern %d of [%s]"
	statusRemoved      = "Removed pattern %d from [%s]"
	statusDefaultLevel = "Default level set to %s"
	statusNoPatterns   = "[%s] has no patterns"
	inputPlaceholder   = "glob pattern, e.g. **/*.go"
)

var menuItems = []MenuItem{
	MenuAddRule,
	MenuEditRule,
	MenuDeleteRule,
	MenuSetDefaultLevel,
	MenuSaveAndQuit,
	MenuQuit,
}

var levels = []types.InclusionLevel{types.InclusionLevelFull, types.InclusionLevelTreeOnly}

// Result is the outcome of an editing session. Configuration holds every applied edit;
// Saved reports whether the user chose to keep them.
type Result struct {
	Configuration types.PatternConfiguration
	Saved         bool
}

// Model implements tea.Model over an in-memory rule set.
type Model struct {
	configuration types.PatternConfiguration
	state         state
	action        action
	cursor        int
	section       rules.Section
	patternIndex  int
	input         textinput.Model
	status        string
	statusIsError bool
	saved         bool
	done          bool
}

// NewModel creates an editor positioned on the main menu.
func NewModel(configuration types.PatternConfiguration) Model {
	input := textinput.New()
	input.Placeholder = inputPlaceholder
	return Model{
		configuration: configuration.Clone(),
		input:         input,
	}
}

// Result returns the configuration as currently edited.
func (m Model) Result() Result {
	return Result{Configuration: m.configuration, Saved: m.saved}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if m.state == stateInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.saved = false
		m.done = true
		return m, tea.Quit
	case "esc":
		if m.state != stateMenu {
			m.backToMenu()
		}
		return m, nil
	}

	if m.state == stateInput {
		return m.updateInput(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
	case "enter":
		return m.choose()
	}
	return m, nil
}

func (m Model) optionCount() int {
	switch m.state {
	case stateMenu:
		return len(menuItems)
	case stateSection:
		return len(rules.Sections)
	case statePattern:
		return len(rules.Patterns(m.configuration, m.section))
	case stateLevel:
		return len(levels)
	default:
		return 0
	}
}

func (m Model) choose() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.chooseMenuItem(menuItems[m.cursor])
	case stateSection:
		m.section = rules.Sections[m.cursor]
		if m.action == actionAdd {
			return m.openInput("")
		}
		if len(rules.Patterns(m.configuration, m.section)) == 0 {
			m.backToMenu()
			m.setStatus(fmt.Sprintf(statusNoPatterns, m.section), true)
			return m, nil
		}
		m.state = statePattern
		m.cursor = 0
	case statePattern:
		m.patternIndex = m.cursor
		if m.action == actionEdit {
			return m.openInput(rules.Patterns(m.configuration, m.section)[m.patternIndex])
		}
		updated, removeError := rules.RemovePattern(m.configuration, m.section, m.patternIndex)
		m.applyEdit(updated, removeError, fmt.Sprintf(statusRemoved, m.patternIndex+1, m.section))
	case stateLevel:
		level := levels[m.cursor]
		m.configuration = rules.SetDefaultLevel(m.configuration, level)
		m.backToMenu()
		m.setStatus(fmt.Sprintf(statusDefaultLevel, level), false)
	}
	return m, nil
}

func (m Model) chooseMenuItem(item MenuItem) (tea.Model, tea.Cmd) {
	m.status = ""
	switch item {
	case MenuAddRule:
		m.openSectionPicker(actionAdd)
	case MenuEditRule:
		m.openSectionPicker(actionEdit)
	case MenuDeleteRule:
		m.openSectionPicker(actionDelete)
	case MenuSetDefaultLevel:
		m.state = stateLevel
		m.cursor = 0
	case MenuSaveAndQuit:
		m.saved = true
		m.done = true
		return m, tea.Quit
	case MenuQuit:
		m.saved = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openSectionPicker(selected action) {
	m.action = selected
	m.state = stateSection
	m.cursor = 0
}

func (m Model) openInput(initial string) (tea.Model, tea.Cmd) {
	m.state = stateInput
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMsg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(keyMsg)
		return m, cmd
	}
	pattern := m.input.Value()
	if m.action == actionEdit {
		updated, replaceError := rules.ReplacePattern(m.configuration, m.section, m.patternIndex, pattern)
		m.applyEdit(updated, replaceError, fmt.Sprintf(statusReplaced, m.patternIndex+1, m.section))
		return m, nil
	}
	updated, addError := rules.AddPattern(m.configuration, m.section, pattern)
	m.applyEdit(updated, addError, fmt.Sprintf(statusAdded, pattern, m.section))
	return m, nil
}

func (m *Model) applyEdit(updated types.PatternConfiguration, editError error, successStatus string) {
	m.backToMenu()
	if editError != nil {
		m.setStatus(editError.Error(), true)
		return
	}
	m.configuration = updated
	m.setStatus(successStatus, false)
}

func (m *Model) backToMenu() {
	m.state = stateMenu
	m.cursor = 0
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) setStatus(status string, isError bool) {
	m.status = status
	m.statusIsError = isError
}

// Run starts the editor on input and output and blocks until the user quits.
func Run(configuration types.PatternConfiguration, input io.Reader, output io.Writer) (Result, error) {
	program := tea.NewProgram(NewModel(configuration), tea.WithInput(input), tea.WithOutput(output))
	finalModel, runError := program.Run()
	if runError != nil {
		return Result{}, fmt.Errorf("run rules editor: %w", runError)
	}
	editorModel, ok := finalModel.(Model)
	if !ok {
		return Result{}, errors.New("rules editor returned an unexpected model")
	}
	return editorModel.Result(), nil
}
