package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestModelChoosesFirstOption(t *testing.T) {
	m := newModel("Pick one", []string{"continue", "abort"})

	updated, _ := m.Update(keyMsg("enter"))
	final := updated.(*model)

	assert.Equal(t, ActionChosen, final.result.Action)
	assert.Equal(t, 0, final.result.Index)
}

func TestModelNavigatesThenChooses(t *testing.T) {
	m := newModel("Pick one", []string{"continue", "abort"})

	updated, _ := m.Update(keyMsg("down"))
	updated, _ = updated.Update(keyMsg("enter"))
	final := updated.(*model)

	assert.Equal(t, ActionChosen, final.result.Action)
	assert.Equal(t, 1, final.result.Index)
}

func TestModelAborts(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := newModel("Pick one", []string{"continue", "abort"})

		updated, _ := m.Update(keyMsg(key))
		final := updated.(*model)

		assert.Equal(t, ActionAborted, final.result.Action, "key %q", key)
	}
}

func TestModelViewContainsTitleAndOptions(t *testing.T) {
	m := newModel("Google Books is not ready", []string{"Continue with OpenLibrary only", "Abort"})

	view := m.View()
	assert.True(t, strings.Contains(view, "Google Books is not ready"))
	assert.True(t, strings.Contains(view, "Continue with OpenLibrary only"))
}

func TestChooseRunsProgram(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		updated, _ := m.Update(keyMsg("enter"))
		return updated, nil
	}

	result, err := Choose("Pick one", []string{"only option"})
	require.NoError(t, err)
	assert.Equal(t, ActionChosen, result.Action)
	assert.Equal(t, 0, result.Index)
}

func TestChooseRejectsEmptyOptions(t *testing.T) {
	_, err := Choose("Pick one", nil)
	require.Error(t, err)
}
