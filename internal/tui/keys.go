package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:   key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "toggle size")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "orbit up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "orbit down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "orbit left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "orbit right")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		PanUp:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "pan up")),
		PanDown:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "pan down")),
		PanLeft:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pan left")),
		PanRight: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pan right")),
		Close:    key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "close popup")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ZoomIn, k.ZoomOut, k.Close, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Close, k.Help, k.Quit},
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.PanUp, k.PanDown, k.PanLeft, k.PanRight},
	}
}
