package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Runes       []rune
	Keys        []tcell.Key
	Label       string // How the help overlay names the keys
	Description string
	Handler     func(*App)
}

// GetKeys returns the label of the keys of this keybinding
func (kb *KeyBinding) GetKeys() string {
	return kb.Label
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

func (kb *KeyBinding) matches(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		for _, r := range kb.Runes {
			if r == ev.Rune() {
				return true
			}
		}
		return false
	}
	for _, k := range kb.Keys {
		if k == ev.Key() {
			return true
		}
	}
	return false
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Runes:       []rune{'j', 'n', ' ', 'l'},
			Keys:        []tcell.Key{tcell.KeyDown, tcell.KeyRight, tcell.KeyPgDn, tcell.KeyEnter},
			Label:       "j n space →",
			Description: "Next step",
			Handler:     func(app *App) { app.Next() },
		},
		{
			Runes:       []rune{'k', 'p', 'h'},
			Keys:        []tcell.Key{tcell.KeyUp, tcell.KeyLeft, tcell.KeyPgUp, tcell.KeyBackspace, tcell.KeyBackspace2},
			Label:       "k p ←",
			Description: "Previous step",
			Handler:     func(app *App) { app.Prev() },
		},
		{
			Runes:       []rune{'g'},
			Keys:        []tcell.Key{tcell.KeyHome},
			Label:       "g Home",
			Description: "First step",
			Handler:     func(app *App) { app.GoTo(0) },
		},
		{
			Runes:       []rune{'G'},
			Keys:        []tcell.Key{tcell.KeyEnd},
			Label:       "G End",
			Description: "Last step",
			Handler:     func(app *App) { app.GoTo(app.deck.Len() - 1) },
		},
		{
			Runes:       []rune{'/'},
			Label:       "/",
			Description: "Search step captions",
			Handler:     func(app *App) { app.search.Start() },
		},
		{
			Runes:       []rune{':'},
			Label:       ":",
			Description: "Command (:N jumps to step N)",
			Handler:     func(app *App) { app.command.Start() },
		},
		{
			Runes:       []rune{'d'},
			Label:       "d",
			Description: "Show line pairings of the last transition",
			Handler:     func(app *App) { app.TogglePairing() },
		},
		{
			Runes:       []rune{'t'},
			Label:       "t",
			Description: "Show the title card",
			Handler:     func(app *App) { app.card.Show() },
		},
		{
			Runes:       []rune{'r'},
			Label:       "r",
			Description: "Reload the deck file",
			Handler:     func(app *App) { app.reloadCommand() },
		},
		{
			Runes:       []rune{'?'},
			Label:       "?",
			Description: "Toggle help",
			Handler:     func(app *App) { app.help.Toggle() },
		},
		{
			Runes:       []rune{'q'},
			Keys:        []tcell.Key{tcell.KeyCtrlC},
			Label:       "q",
			Description: "Quit",
			Handler:     func(app *App) { app.Quit() },
		},
	}
}

func (a *App) lookup(ev *tcell.EventKey) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].matches(ev) {
			return &a.keybindings[i]
		}
	}
	return nil
}

func (a *App) helpBindings() []ui.KeyBindingInfo {
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	return infos
}
