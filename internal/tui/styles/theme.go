package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the control UI
var (
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Subtext0 = lipgloss.Color("#a6adc8")
	Text     = lipgloss.Color("#cdd6f4")

	Blue   = lipgloss.Color("#89b4fa")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve).
			Background(Surface0).
			Padding(0, 1)

	TableBaseStyle = lipgloss.NewStyle().
			Foreground(Text).
			BorderForeground(Surface1).
			Align(lipgloss.Left)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Blue)

	OnStyle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	OffStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Red)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Mauve)

	BusyStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// Toggle renders a boolean device state
func Toggle(on bool) string {
	if on {
		return OnStyle.Render("on")
	}
	return OffStyle.Render("off")
}
