package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// menuKeys holds key bindings for menu mode.
type menuKeys struct {
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns the menu mode bindings for the help bar.
func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Quit}
}

// FullHelp returns the menu mode bindings grouped for expanded help.
func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Select, k.Quit}}
}

// inputKeys holds key bindings for the name prompt, form and pick modes.
type inputKeys struct {
	Confirm key.Binding
	Back    key.Binding
}

// ShortHelp returns the input mode bindings for the help bar.
func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Back}
}

// FullHelp returns the input mode bindings grouped for expanded help.
func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Back}}
}

// resultsKeys holds key bindings for results mode.
type resultsKeys struct {
	AnyKey key.Binding
}

// ShortHelp returns the results mode bindings for the help bar.
func (k resultsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.AnyKey}
}

// FullHelp returns the results mode bindings grouped for expanded help.
func (k resultsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.AnyKey}}
}

func menuKeyMap() menuKeys {
	return menuKeys{
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "choose"),
		),
		Quit: key.NewBinding(
			key.WithKeys("0", "q"),
			key.WithHelp("0/q", "quit"),
		),
	}
}

func inputKeyMap() inputKeys {
	return inputKeys{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

func resultsKeyMap() resultsKeys {
	return resultsKeys{
		// Display-only; any key is handled in Update.
		AnyKey: key.NewBinding(
			key.WithKeys("any"),
			key.WithHelp("any key", "back to menu"),
		),
	}
}

// keyMap groups the bindings Update dispatches on. The same bindings feed
// the help bar.
type keyMap struct {
	ForceQuit key.Binding
	Menu      menuKeys
	Input     inputKeys
	Results   resultsKeys
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Menu:      menuKeyMap(),
		Input:     inputKeyMap(),
		Results:   resultsKeyMap(),
	}
}

// forMode returns the help.KeyMap for the given mode.
func (k keyMap) forMode(m mode) help.KeyMap {
	switch m {
	case modeMenu:
		return k.Menu
	case modeResults:
		return k.Results
	default:
		return k.Input
	}
}
