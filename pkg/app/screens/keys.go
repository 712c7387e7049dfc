package screens

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause key.Binding
	Previous  key.Binding
	Next      key.Binding
	VolumeUp  key.Binding
	VolumeDn  key.Binding
	Seek      key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Filter    key.Binding
	Back      key.Binding
	Tab       key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
	Previous:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous surah")),
	Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next surah")),
	VolumeUp:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
	VolumeDn:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "volume down")),
	Seek:      key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "seek")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open surah")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// playerKeys and chapterKeys are the help.KeyMap views of each screen.
type playerKeys struct{ keyMap }

func (k playerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Previous, k.Next, k.VolumeUp, k.VolumeDn, k.Seek, k.Tab, k.Quit}
}

func (k playerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type chapterKeys struct{ keyMap }

func (k chapterKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Filter, k.Back, k.PlayPause, k.Tab, k.Quit}
}

func (k chapterKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
