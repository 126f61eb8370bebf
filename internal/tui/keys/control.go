package keys

import "github.com/charmbracelet/bubbles/key"

// ControlKeys are the bindings of the interactive matrix control
type ControlKeys struct {
	Quit           key.Binding
	Help           key.Binding
	BrightnessUp   key.Binding
	BrightnessDown key.Binding
	Sleep          key.Binding
	Animate        key.Binding
	NextPattern    key.Binding
	PrevPattern    key.Binding
	Percent        key.Binding
	Refresh        key.Binding
}

func NewControlKeys() ControlKeys {
	return ControlKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		BrightnessUp: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/↑", "brighter"),
		),
		BrightnessDown: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/↓", "dimmer"),
		),
		Sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sleep"),
		),
		Animate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle animate"),
		),
		NextPattern: key.NewBinding(
			key.WithKeys("p", "right", "l"),
			key.WithHelp("p/→", "next pattern"),
		),
		PrevPattern: key.NewBinding(
			key.WithKeys("P", "left", "h"),
			key.WithHelp("P/←", "previous pattern"),
		),
		Percent: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "fill 0-90%"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

func (k ControlKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.BrightnessUp, k.BrightnessDown, k.NextPattern, k.Help, k.Quit}
}

func (k ControlKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.BrightnessUp, k.BrightnessDown, k.Percent},
		{k.NextPattern, k.PrevPattern},
		{k.Sleep, k.Animate, k.Refresh},
		{k.Help, k.Quit},
	}
}
