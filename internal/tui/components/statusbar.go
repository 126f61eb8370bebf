package components

import (
	"fmt"

	"github.com/allbin/go-ledmatrix/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

type StatusBar struct {
	label   string
	backend string
	status  string
	err     error
	busy    bool
	width   int
}

func NewStatusBar(label, backend string) *StatusBar {
	return &StatusBar{
		label:   label,
		backend: backend,
		status:  "Reading device state...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetBusy(status string) {
	sb.busy = true
	sb.status = status
	sb.err = nil
}

func (sb *StatusBar) SetDone(status string, err error) {
	sb.busy = false
	sb.err = err
	if err != nil {
		sb.status = fmt.Sprintf("%s failed: %v", status, err)
		return
	}
	sb.status = status
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) Status() string {
	return sb.status
}

func (sb *StatusBar) View() string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	var indicator string
	switch {
	case sb.err != nil:
		indicator = styles.ErrorStyle.Render("✗")
	case sb.busy:
		indicator = styles.BusyStyle.Render("○")
	default:
		indicator = styles.OnStyle.Render("●")
	}

	label := lipgloss.NewStyle().
		Foreground(styles.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.label)

	statusStyle := styles.InfoStyle
	if sb.err != nil {
		statusStyle = styles.ErrorStyle
	}
	status := statusStyle.Padding(0, 1).Render(sb.status)

	backend := lipgloss.NewStyle().
		Foreground(styles.Subtext0).
		Padding(0, 1).
		Render("⚡ " + sb.backend)

	left := lipgloss.JoinHorizontal(lipgloss.Left, label, indicator, status)
	spacerWidth := width - lipgloss.Width(left) - lipgloss.Width(backend)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Surface0).
		Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, left, spacer, backend))
}
