package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	for _, b := range []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Restart", km.Restart},
		{"Theme", km.Theme},
		{"Help", km.Help},
	} {
		if !b.binding.Enabled() || len(b.binding.Keys()) == 0 {
			t.Errorf("%s binding is not usable", b.name)
		}
	}
	if len(km.ShortHelp()) != 4 || len(km.FullHelp()) != 2 {
		t.Error("help groups do not list every binding")
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		if !key.Matches(msg, km.Quit) {
			t.Errorf("%q should quit", msg.String())
		}
	}
}
