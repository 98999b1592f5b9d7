package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nhath/ezsql/internal/config"
)

// KeyMap defines keyboard bindings for the console.
type KeyMap struct {
	Execute      key.Binding
	Save         key.Binding
	ListSaved    key.Binding
	Autocomplete key.Binding
	Quit         key.Binding
	Cancel       key.Binding
}

// NewKeyMap builds bindings from configured key strings.
func NewKeyMap(k config.KeyMap) KeyMap {
	return KeyMap{
		Execute:      binding(k.Execute, "execute"),
		Save:         binding(k.Save, "save query"),
		ListSaved:    binding(k.ListSaved, "saved queries"),
		Autocomplete: binding(k.Autocomplete, "complete"),
		Quit:         binding(k.Quit, "quit"),
		Cancel:       binding(k.Cancel, "cancel"),
	}
}

// DefaultKeyMap returns the default console key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyMap())
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns the bindings that apply in SQL entry.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Execute, k.Autocomplete, k.Save, k.ListSaved, k.Quit}
}

// FullHelp returns the complete help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Execute, k.Autocomplete},
		{k.Save, k.ListSaved},
		{k.Cancel, k.Quit},
	}
}

// HelpFor returns the bindings that do something in mode.
func (k KeyMap) HelpFor(mode Mode) []key.Binding {
	switch mode.(type) {
	case NamingQuery:
		confirm := k.Execute
		confirm.SetHelp(confirm.Help().Key, "save")
		return []key.Binding{confirm, k.Cancel}
	case SelectingSaved:
		confirm := k.Execute
		confirm.SetHelp(confirm.Help().Key, "load")
		return []key.Binding{confirm, k.Cancel}
	default:
		return k.ShortHelp()
	}
}

// keyLabel renders the first key of a binding for prose, e.g. "Enter" or "Ctrl+s".
func keyLabel(b key.Binding) string {
	keys := b.Keys()
	if len(keys) == 0 || keys[0] == "" {
		return ""
	}
	if len(keys[0]) == 1 {
		return keys[0]
	}
	return strings.ToUpper(keys[0][:1]) + keys[0][1:]
}
