// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 60
	defaultListHeight = 10
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// ChoiceAction represents the user's action in the chooser.
type ChoiceAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone ChoiceAction = iota
	// ActionChosen indicates the user picked an option.
	ActionChosen
	// ActionAborted indicates the user backed out.
	ActionAborted
)

// ChoiceResult holds the outcome of a Choose call.
type ChoiceResult struct {
	Action ChoiceAction
	Index  int
}

type option struct {
	index int
	text  string
}

func (o option) FilterValue() string { return o.text }

type optionStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newOptionStyles() optionStyles {
	normal := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("252"))

	selected := normal.Copy().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237")).
		Bold(true)

	return optionStyles{normal: normal, selected: selected}
}

type optionDelegate struct {
	styles optionStyles
}

func (d optionDelegate) Height() int                         { return 1 }
func (d optionDelegate) Spacing() int                        { return 0 }
func (d optionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	opt, ok := item.(option)
	if !ok {
		return
	}

	style := d.styles.normal
	prefix := "  "
	if idx == m.Index() {
		style = d.styles.selected
		prefix = "> "
	}
	_, _ = fmt.Fprint(w, style.Render(prefix+opt.text))
}

type model struct {
	list   list.Model
	title  string
	result ChoiceResult
}

func newModel(title string, options []string) *model {
	items := make([]list.Item, len(options))
	for i, text := range options {
		items[i] = option{index: i, text: text}
	}

	l := list.New(items, optionDelegate{styles: newOptionStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		title:  title,
		result: ChoiceResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if opt, ok := m.list.SelectedItem().(option); ok {
				m.result = ChoiceResult{Action: ActionChosen, Index: opt.index}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = ChoiceResult{Action: ActionAborted}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.list.SetSize(min(defaultListWidth, msg.Width-4), defaultListHeight)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(m.title)
	help := helpStyle.Render("Up/Down navigate | Enter choose | q abort")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Choose presents an interactive list of options under the given title and
// returns the user's pick, or an aborted result when they back out.
func Choose(title string, options []string) (ChoiceResult, error) {
	if len(options) == 0 {
		return ChoiceResult{Action: ActionAborted}, fmt.Errorf("no options to choose from")
	}

	final, err := runProgram(newModel(title, options))
	if err != nil {
		return ChoiceResult{Action: ActionAborted}, fmt.Errorf("running chooser: %w", err)
	}

	m, ok := final.(*model)
	if !ok {
		return ChoiceResult{Action: ActionAborted}, fmt.Errorf("unexpected model type")
	}
	return m.result, nil
}
